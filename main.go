package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeker/config"
	"github.com/pthm-cable/seeker/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logEpisodes := flag.Bool("log-episodes", false, "Log every finished episode via slog")
	logStats := flag.Bool("log-stats", false, "Log window stats, perf and milestones via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	modelPath := flag.String("model", "", "Model file used by save/load (empty = models/seeker-episode-N.json on save)")
	loadModel := flag.Bool("load", false, "Load -model before starting")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	if *stepsPerUpdate < 1 {
		*stepsPerUpdate = 1
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogEpisodes: *logEpisodes,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	if *loadModel {
		if *modelPath == "" {
			slog.Error("-load requires -model")
			os.Exit(1)
		}
		if err := g.LoadModel(*modelPath); err != nil {
			os.Exit(1)
		}
	}

	if *headless {
		slog.Info("starting headless training",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.Run(*stepsPerUpdate)

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick(), "episode", g.Context().Episode)
				break
			}
		}
		if *modelPath != "" {
			if _, err := g.SaveModel(*modelPath); err != nil {
				os.Exit(1)
			}
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Seeker")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := newViewer(g, *modelPath, *stepsPerUpdate)
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
