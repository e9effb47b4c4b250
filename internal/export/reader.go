// Package export reads an Apple Health export (export.zip or a bare
// export.xml) and decodes the records of interest into typed raw events.
package export

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/claude/healthsheet/internal/models"
)

// ReadEvents opens path — either an export.zip containing export.xml or the
// XML file itself — and decodes all sleep and cardiac records. Records whose
// timestamps or values fail to parse are still emitted (with sentinel fields)
// so the pipeline can count them; records of other types are never
// materialized.
func ReadEvents(path string, log *slog.Logger) ([]models.RawEvent, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return readFromZip(path, log)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	return DecodeRecords(f, log)
}

// readFromZip locates export.xml inside the archive and decodes it without
// extracting to disk.
func readFromZip(path string, log *slog.Logger) ([]models.RawEvent, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	var xmlFile *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "export.xml") {
			xmlFile = f
			break
		}
	}
	if xmlFile == nil {
		return nil, fmt.Errorf("no export.xml found in %s", path)
	}
	log.Info("found export document", "entry", xmlFile.Name)

	rc, err := xmlFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", xmlFile.Name, err)
	}
	defer rc.Close()

	return DecodeRecords(rc, log)
}
