package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/healthsheet/internal/config"
	"github.com/claude/healthsheet/internal/export"
	"github.com/claude/healthsheet/internal/models"
	"github.com/claude/healthsheet/internal/pipeline"
	"github.com/claude/healthsheet/internal/report"
	"github.com/claude/healthsheet/internal/state"
	"github.com/claude/healthsheet/internal/storage"
)

func main() {
	days := flag.Int("days", pipeline.DefaultDaysBack, "number of days to include, counted back from now")
	output := flag.String("output", "health_data_export.csv", "output CSV path")
	asOf := flag.String("as-of", "", "reference date for the lookback window (YYYY-MM-DD, defaults to now)")
	stateDir := flag.String("state-dir", "", "directory for the processed-file state db (skip detection disabled when empty)")
	force := flag.Bool("force", false, "process the export even if it was already processed")
	dryRun := flag.Bool("dry-run", false, "report counts without writing the CSV or database")
	store := flag.Bool("store", false, "also upsert daily rows into PostgreSQL (requires -config)")
	configPath := flag.String("config", "config.yaml", "path to config file (used with -store)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: healthsheet [flags] export.zip|export.xml\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	now := time.Now()
	if *asOf != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, *asOf, time.Local)
		if err != nil {
			log.Error("invalid -as-of date", "value", *asOf, "error", err)
			os.Exit(1)
		}
		// End of the as-of day, so the whole day is inside the window.
		now = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	var stateDB *state.StateDB
	var size int64
	var hash string
	if *stateDir != "" {
		info, err := os.Stat(inputPath)
		if err != nil {
			log.Error("stat input failed", "path", inputPath, "error", err)
			os.Exit(1)
		}
		size = info.Size()

		hash, err = state.HashFile(inputPath)
		if err != nil {
			log.Error("hashing input failed", "path", inputPath, "error", err)
			os.Exit(1)
		}

		stateDB, err = state.Open(*stateDir)
		if err != nil {
			log.Error("opening state db failed", "error", err)
			os.Exit(1)
		}
		defer stateDB.Close()

		done, err := stateDB.IsProcessed(inputPath, size, hash)
		if err != nil {
			log.Error("state check failed", "error", err)
			os.Exit(1)
		}
		if done && !*force {
			log.Info("export already processed, skipping (use -force to reprocess)", "path", inputPath)
			return
		}
	}

	if *dryRun {
		log.Info("DRY RUN mode — no files or database rows will be written")
	}

	started := time.Now()

	events, err := export.ReadEvents(inputPath, log)
	if err != nil {
		log.Error("reading export failed", "path", inputPath, "error", err)
		os.Exit(1)
	}

	result := pipeline.Run(events, pipeline.Options{DaysBack: *days, Now: now}, log)
	pipeline.LogAverages(log, pipeline.ComputeAverages(result.SleepDaily, result.CardiacDaily))

	if *dryRun {
		log.Info("dry run complete", "rows", len(result.Rows))
		return
	}

	if err := report.WriteCSVFile(*output, result.Rows); err != nil {
		log.Error("writing CSV failed", "path", *output, "error", err)
		os.Exit(1)
	}
	log.Info("CSV written", "path", *output, "rows", len(result.Rows))

	if *store {
		if err := storeResult(inputPath, *configPath, *days, started, result, log); err != nil {
			log.Error("storing results failed", "error", err)
			os.Exit(1)
		}
	}

	if stateDB != nil {
		if err := stateDB.MarkProcessed(inputPath, size, hash); err != nil {
			log.Warn("recording processed export failed", "error", err)
		}
	}

	log.Info("done")
}

func storeResult(inputPath, configPath string, days int, started time.Time, result *pipeline.Result, log *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, storage.MigrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer db.Close()

	if _, err := db.UpsertSleepSummaries(ctx, result.SleepDaily); err != nil {
		return err
	}
	if _, err := db.UpsertCardiacSummaries(ctx, result.CardiacDaily); err != nil {
		return err
	}

	durationMs := int(time.Since(started).Milliseconds())
	runID, err := db.InsertImportRun(ctx, storage.ImportRun{
		SourcePath:        inputPath,
		DaysBack:          days,
		SleepSessions:     result.Stats.SleepSessions,
		HeartRateReadings: result.Stats.HeartRateReadings,
		RestingHRReadings: result.Stats.RestingHRReadings,
		HRVReadings:       result.Stats.HRVReadings,
		DroppedTimestamps: result.Stats.DroppedTimestamps,
		SkippedValues:     result.Stats.SkippedValues,
		UnknownStages:     result.Stats.UnknownStages,
		OutsideWindow:     result.Stats.OutsideWindow,
		RowsWritten:       len(result.Rows),
		DurationMs:        &durationMs,
	})
	if err != nil {
		return err
	}

	log.Info("daily rows stored",
		"run_id", runID,
		"sleep_days", len(result.SleepDaily),
		"cardiac_days", len(result.CardiacDaily),
	)
	return nil
}
