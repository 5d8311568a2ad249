package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/lattice/config"
	"github.com/pthm-cable/lattice/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Noise seed (0 = use config)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != 0 {
		cfg.Noise.Seed = *seed
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	opts := game.Options{
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		LogStats:    *logStats,
		Headless:    *headless,
	}

	var err error
	if *headless {
		err = runHeadless(cfg, opts, *maxFrames)
	} else {
		err = runGraphical(cfg, opts, *maxFrames)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the lattice at the configured fixed delta with no
// graphics. Without -max-frames it runs until killed.
func runHeadless(cfg *config.Config, opts game.Options, maxFrames int) error {
	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting headless run",
		"seed", cfg.Noise.Seed,
		"instances", cfg.Derived.InstanceCount,
		"dt", cfg.Loop.DT,
		"max_frames", maxFrames,
	)

	for {
		g.Step(cfg.Loop.DT)

		if maxFrames > 0 && g.FrameIndex() >= int64(maxFrames) {
			slog.Info("max frames reached", "frame", g.FrameIndex())
			if _, err := g.SaveSnapshot(); err != nil {
				return err
			}
			return nil
		}
	}
}
