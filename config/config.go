// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Robot     RobotConfig     `yaml:"robot"`
	Sensors   SensorsConfig   `yaml:"sensors"`
	Reward    RewardConfig    `yaml:"reward"`
	Learning  LearningConfig  `yaml:"learning"`
	Network   NetworkConfig   `yaml:"network"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Tune      TuneConfig      `yaml:"tune"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the rectangular arena dimensions.
type ArenaConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TargetMargin float64 `yaml:"target_margin"` // Targets spawn at least this far from every wall
}

// RobotConfig holds the robot body parameters.
type RobotConfig struct {
	Radius         float64 `yaml:"radius"`
	InitialHeading float64 `yaml:"initial_heading"` // radians
}

// SensorsConfig holds range sensor parameters.
type SensorsConfig struct {
	Count     int     `yaml:"count"`      // Number of rays, must be odd
	Length    float64 `yaml:"length"`     // Maximum ray length
	FOV       float64 `yaml:"fov"`        // Total fan width in radians
	NearField float64 `yaml:"near_field"` // Readings below this count as wall contact
}

// RewardConfig holds reward shaping parameters.
type RewardConfig struct {
	StepPenalty      float64 `yaml:"step_penalty"`
	ProgressScale    float64 `yaml:"progress_scale"`
	GoalReward       float64 `yaml:"goal_reward"`
	GoalRadius       float64 `yaml:"goal_radius"`
	CollisionPenalty float64 `yaml:"collision_penalty"`
	OrientationScale float64 `yaml:"orientation_scale"`
}

// LearningConfig holds Q-learning and replay parameters.
type LearningConfig struct {
	MemorySize       int     `yaml:"memory_size"`
	BatchSize        int     `yaml:"batch_size"`
	Discount         float64 `yaml:"discount"`
	LearningRate     float64 `yaml:"learning_rate"`
	EpsilonStart     float64 `yaml:"epsilon_start"`
	EpsilonDecay     float64 `yaml:"epsilon_decay"`
	EpsilonMin       float64 `yaml:"epsilon_min"`
	EpsilonAfterLoad float64 `yaml:"epsilon_after_load"`
	AsyncTraining    bool    `yaml:"async_training"` // Run the training step off the tick goroutine
}

// NetworkConfig holds value network parameters.
type NetworkConfig struct {
	HiddenLayers []int `yaml:"hidden_layers"` // Sizes of hidden layers, e.g. [24, 24]
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowEpisodes int `yaml:"window_episodes"` // Episodes aggregated per stats window
	PerfWindow     int `yaml:"perf_window"`     // Ticks averaged by the perf collector
}

// TuneConfig holds parameters for cmd/tune.
type TuneConfig struct {
	Ticks      int `yaml:"ticks"`      // Training ticks per evaluation run
	Seeds      int `yaml:"seeds"`      // Runs per evaluation
	MaxEvals   int `yaml:"max_evals"`  // Total function evaluations
	Population int `yaml:"population"` // CMA-ES population (0 = auto)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StateSize  int     // Sensors.Count + 2 (distance, bearing)
	CenterX    float64 // Arena center
	CenterY    float64
	SensorStep float64 // Angle between adjacent rays
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks parameter ranges that the simulation relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena: size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height))
	}
	if 2*c.Arena.TargetMargin >= c.Arena.Width || 2*c.Arena.TargetMargin >= c.Arena.Height {
		errs = append(errs, fmt.Errorf("arena: target_margin %v leaves no room for targets", c.Arena.TargetMargin))
	}
	if c.Sensors.Count < 3 || c.Sensors.Count%2 == 0 {
		errs = append(errs, fmt.Errorf("sensors: count must be odd and >= 3, got %d", c.Sensors.Count))
	}
	if c.Sensors.Length <= 0 {
		errs = append(errs, fmt.Errorf("sensors: length must be positive, got %v", c.Sensors.Length))
	}
	if c.Learning.BatchSize <= 0 || c.Learning.MemorySize < c.Learning.BatchSize {
		errs = append(errs, fmt.Errorf("learning: need 0 < batch_size <= memory_size, got %d/%d",
			c.Learning.BatchSize, c.Learning.MemorySize))
	}
	l := c.Learning
	if l.EpsilonMin <= 0 || l.EpsilonMin > l.EpsilonStart || l.EpsilonStart > 1 {
		errs = append(errs, fmt.Errorf("learning: need 0 < epsilon_min <= epsilon_start <= 1, got %v/%v",
			l.EpsilonMin, l.EpsilonStart))
	}
	if l.EpsilonDecay <= 0 || l.EpsilonDecay > 1 {
		errs = append(errs, fmt.Errorf("learning: epsilon_decay must be in (0, 1], got %v", l.EpsilonDecay))
	}
	if len(c.Network.HiddenLayers) == 0 {
		errs = append(errs, errors.New("network: at least one hidden layer is required"))
	}
	for _, n := range c.Network.HiddenLayers {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("network: hidden layer size must be positive, got %d", n))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StateSize = c.Sensors.Count + 2 // readings + distance + bearing
	c.Derived.CenterX = c.Arena.Width / 2
	c.Derived.CenterY = c.Arena.Height / 2
	c.Derived.SensorStep = c.Sensors.FOV / float64(c.Sensors.Count-1)

	if c.Telemetry.WindowEpisodes <= 0 {
		c.Telemetry.WindowEpisodes = 20
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 600
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Network.HiddenLayers = append([]int(nil), c.Network.HiddenLayers...)
	return &out
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
