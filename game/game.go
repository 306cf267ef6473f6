// Package game runs the training episodes: it owns the world, the agent and
// the telemetry, and advances them one tick at a time.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeker/components"
	"github.com/pthm-cable/seeker/config"
	"github.com/pthm-cable/seeker/neural"
	"github.com/pthm-cable/seeker/systems"
	"github.com/pthm-cable/seeker/telemetry"
)

// Options configures a Game beyond the simulation config.
type Options struct {
	Seed        int64
	LogEpisodes bool   // log every finished episode
	LogStats    bool   // log window stats, perf and bookmarks
	OutputDir   string // CSV output directory (empty = disabled)
	ModelDir    string // default directory for SaveModel with an empty path
}

// Context is the mutable episode state.
type Context struct {
	Episode      int
	Tick         int64 // ticks since start, across episodes
	EpisodeTicks int
	TotalReward  float64
	LastDist     float64
	LastOutcome  systems.Outcome // outcome of the most recently finished episode
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	opts Options

	world     *ecs.World
	robot     ecs.Entity
	target    ecs.Entity
	robotMap  *ecs.Map5[components.Pose, components.Motion, components.Body, components.Sensors, components.Robot]
	targetMap *ecs.Map1[components.Target]

	sensors *systems.SensorSystem
	physics *systems.PhysicsSystem
	reward  systems.RewardParams

	brain   *neural.Brain
	trainer *trainer // nil when training runs on the tick goroutine
	rng     *rand.Rand

	ctx Context

	// Training loss accumulated over the current episode
	lossSum   float64
	lossCount int

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	episodeHook   func(telemetry.EpisodeRecord)
	statsHook     func(telemetry.WindowStats)
}

// NewGame creates a game with a fresh agent and starts the first episode.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		world:     world,
		robotMap:  ecs.NewMap5[components.Pose, components.Motion, components.Body, components.Sensors, components.Robot](world),
		targetMap: ecs.NewMap1[components.Target](world),
		physics:   systems.NewPhysicsSystem(world),
		sensors:   systems.NewSensorSystem(world, systems.NewSensorArray(cfg)),
		reward:    systems.RewardParamsFrom(cfg),
		brain:     neural.NewBrain(neural.ConfigFrom(cfg), rand.New(rand.NewSource(opts.Seed+1))),
		rng:       rng,

		collector:     telemetry.NewCollector(cfg.Telemetry.WindowEpisodes),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g.spawn()
	if cfg.Learning.AsyncTraining {
		g.trainer = newTrainer(g.brain)
	}
	g.Reset()

	slog.Info("game created",
		"seed", opts.Seed,
		"arch", g.brain.Architecture().String(),
		"async_training", cfg.Learning.AsyncTraining,
		"output_dir", opts.OutputDir,
	)
	return g, nil
}

// spawn creates the robot and target entities.
func (g *Game) spawn() {
	pose := components.Pose{
		X:       g.cfg.Derived.CenterX,
		Y:       g.cfg.Derived.CenterY,
		Heading: g.cfg.Robot.InitialHeading,
	}
	motion := components.Motion{}
	body := components.Body{Radius: g.cfg.Robot.Radius}
	sensors := components.Sensors{}
	robot := components.Robot{Alive: true}
	g.robot = g.robotMap.NewEntity(&pose, &motion, &body, &sensors, &robot)

	target := components.Target{X: g.cfg.Derived.CenterX, Y: g.cfg.Derived.CenterY}
	g.target = g.targetMap.NewEntity(&target)
}

// Close stops the background trainer and flushes output files.
func (g *Game) Close() error {
	if g.trainer != nil {
		g.trainer.stop()
		g.trainer = nil
	}
	return g.outputManager.Close()
}

// Config returns the simulation config.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Brain returns the learning agent.
func (g *Game) Brain() *neural.Brain {
	return g.brain
}

// Context returns a copy of the episode state.
func (g *Game) Context() Context {
	return g.ctx
}

// Tick returns the number of ticks run so far.
func (g *Game) Tick() int64 {
	return g.ctx.Tick
}

// Pose returns the robot pose.
func (g *Game) Pose() components.Pose {
	pose, _, _, _, _ := g.robotMap.Get(g.robot)
	return *pose
}

// Target returns the target position.
func (g *Game) Target() components.Target {
	return *g.targetMap.Get(g.target)
}

// Training reports whether the agent explores and learns.
func (g *Game) Training() bool {
	return g.brain.Training()
}

// SetTraining enables or disables exploration and learning.
func (g *Game) SetTraining(on bool) {
	if g.trainer != nil && !on {
		g.trainer.wait()
	}
	g.brain.SetTraining(on)
	slog.Info("training toggled", "training", on, "episode", g.ctx.Episode)
}

// OnEpisode registers a callback invoked for every finished episode.
func (g *Game) OnEpisode(fn func(telemetry.EpisodeRecord)) {
	g.episodeHook = fn
}

// OnStats registers a callback invoked for every flushed stats window.
func (g *Game) OnStats(fn func(telemetry.WindowStats)) {
	g.statsHook = fn
}

// PerfStats returns timing statistics over the recent ticks.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks the end of a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}
