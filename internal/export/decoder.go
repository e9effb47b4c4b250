package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/claude/healthsheet/internal/models"
)

// recordElement mirrors the attributes of a <Record> element in export.xml.
// The document nests records under <HealthData>; a streaming token walk keeps
// memory bounded even for multi-gigabyte exports.
type recordElement struct {
	Type       string `xml:"type,attr"`
	StartDate  string `xml:"startDate,attr"`
	EndDate    string `xml:"endDate,attr"`
	Value      string `xml:"value,attr"`
	Unit       string `xml:"unit,attr"`
	SourceName string `xml:"sourceName,attr"`
}

// DecodeRecords streams the export document and returns one RawEvent per
// record of a supported type. Timestamp and value parse failures are carried
// as sentinel fields (zero time, NaN) rather than dropped here, so the
// pipeline owns the data-quality accounting.
func DecodeRecords(r io.Reader, log *slog.Logger) ([]models.RawEvent, error) {
	dec := xml.NewDecoder(r)
	events := make([]models.RawEvent, 0, 4096)
	var total int

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding export document: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Record" {
			continue
		}
		total++

		var rec recordElement
		if err := dec.DecodeElement(&rec, &se); err != nil {
			return nil, fmt.Errorf("decoding record element: %w", err)
		}

		kind, ok := kindOf(rec.Type)
		if !ok {
			continue
		}
		events = append(events, toEvent(kind, rec))
	}

	log.Info("decoded export document", "records_seen", total, "events", len(events))
	return events, nil
}

// kindOf maps a HealthKit record type identifier to an event kind.
func kindOf(hkType string) (models.EventKind, bool) {
	switch hkType {
	case models.HKTypeSleepAnalysis:
		return models.KindSleepStage, true
	case models.HKTypeHeartRate:
		return models.KindHeartRate, true
	case models.HKTypeRestingHeartRate:
		return models.KindRestingHeartRate, true
	case models.HKTypeHRVSDNN:
		return models.KindHRV, true
	default:
		return 0, false
	}
}

func toEvent(kind models.EventKind, rec recordElement) models.RawEvent {
	ev := models.RawEvent{
		Kind:   kind,
		Start:  parseTimeOrZero(rec.StartDate),
		End:    parseTimeOrZero(rec.EndDate),
		Unit:   rec.Unit,
		Source: sourceOrUnknown(rec.SourceName),
	}

	if kind == models.KindSleepStage {
		ev.StageLabel = rec.Value
		return ev
	}

	v, err := strconv.ParseFloat(rec.Value, 64)
	if err != nil {
		v = math.NaN()
	}
	ev.Value = v
	return ev
}

func parseTimeOrZero(s string) time.Time {
	t, err := models.ParseExportTime(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func sourceOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
