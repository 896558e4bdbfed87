// Package main is the entry point for the headless bbq battle runner.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/bbq/internal/game"
	"github.com/samdwyer/bbq/internal/gamedata"
	"github.com/samdwyer/bbq/internal/logging"
	"github.com/samdwyer/bbq/internal/telemetry"
)

func main() {
	defer logging.Sync()

	// Load .env file for local development
	// This makes HONEYCOMB_BBQ_API_KEY and the BBQ_* settings available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		logging.Info(".env file not loaded", zap.String("reason", err.Error()))
	}

	setupOTelEnv()

	cfg, err := game.LoadConfig(os.Getenv)
	if err != nil {
		logging.Fatal("invalid configuration", err)
	}

	seed := flag.Int64("seed", cfg.Seed, "random seed (0 = time based)")
	enemy := flag.String("enemy", cfg.EnemyID, "enemy id (empty = weighted random spawn)")
	dataDir := flag.String("data", cfg.DataDir, "directory with YAML catalog overrides")
	maxTicks := flag.Int("max-ticks", cfg.MaxTicks, "abort a battle after this many host ticks")
	n := flag.Int("n", 1, "number of battles; more than one prints a batch summary")
	workers := flag.Int("workers", 4, "concurrent workers for batch runs")
	out := flag.String("out", "", "write the JSON report to this file instead of stdout")
	verbose := flag.Bool("v", false, "print turn and round events too")
	color := flag.Bool("color", false, "tint the enemy name and break markers")
	logPath := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	if *logPath != "" {
		if err := logging.Setup(*logPath); err != nil {
			logging.Warn("log file unavailable, logging to stderr", err, zap.String("path", *logPath))
		}
	}

	cfg.Seed = *seed
	cfg.EnemyID = *enemy
	cfg.DataDir = *dataDir
	cfg.MaxTicks = *maxTicks

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logging.Warn("telemetry setup failed, running without observability", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logging.Error("telemetry shutdown failed", err)
			}
		}()
	}

	catalog, err := gamedata.LoadCatalogDir(cfg.DataDir)
	if err != nil {
		logging.Fatal("failed to load catalog", err, zap.String("dir", cfg.DataDir))
	}

	var result any
	if *n <= 1 {
		g := game.New(cfg, catalog,
			game.WithTracer(telemetry.Tracer("game")),
			game.WithPresenter(&game.TextPresenter{W: os.Stdout, Verbose: *verbose, Color: *color}),
			game.KeepEvents(),
		)
		report, err := g.Run(ctx)
		if err != nil {
			logging.Error("battle failed", err, zap.String("enemy", cfg.EnemyID))
			return
		}
		logging.Info("battle finished",
			zap.Int64("seed", report.Seed),
			zap.String("enemy", report.EnemyID),
			zap.String("outcome", string(report.Result.Outcome)),
			zap.Int("turns", report.Result.Turns),
		)
		if *out == "" {
			return
		}
		result = report
	} else {
		summary, err := game.RunBatch(ctx, cfg, catalog, *n, *workers, game.WithTracer(telemetry.Tracer("batch")))
		if err != nil {
			logging.Error("batch failed", err, zap.Int("runs", *n))
			return
		}
		result = summary
	}

	if err := writeJSON(*out, result); err != nil {
		logging.Error("failed to write report", err, zap.String("out", *out))
	}
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// The .env file may have an unexpanded variable reference in the headers, so
// they are always constructed here.
func setupOTelEnv() {
	env := telemetry.HoneycombEnv(os.Getenv("HONEYCOMB_BBQ_API_KEY"), os.Getenv("HONEYCOMB_BBQ_DATASET"))
	for k, v := range env {
		os.Setenv(k, v)
	}
}
