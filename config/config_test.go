package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Arena.Width != 800 || cfg.Arena.Height != 600 {
		t.Errorf("arena = %vx%v, want 800x600", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Sensors.Count != 5 {
		t.Errorf("sensor count = %d, want 5", cfg.Sensors.Count)
	}
	if cfg.Derived.StateSize != 7 {
		t.Errorf("state size = %d, want 7", cfg.Derived.StateSize)
	}
	if math.Abs(cfg.Sensors.FOV-math.Pi/1.5) > 1e-12 {
		t.Errorf("fov = %v, want pi/1.5", cfg.Sensors.FOV)
	}
	if math.Abs(cfg.Robot.InitialHeading+math.Pi/2) > 1e-12 {
		t.Errorf("initial heading = %v, want -pi/2", cfg.Robot.InitialHeading)
	}
	if len(cfg.Network.HiddenLayers) != 2 || cfg.Network.HiddenLayers[0] != 24 {
		t.Errorf("hidden layers = %v, want [24 24]", cfg.Network.HiddenLayers)
	}
	if cfg.Learning.MemorySize != 2000 || cfg.Learning.BatchSize != 64 {
		t.Errorf("memory/batch = %d/%d, want 2000/64", cfg.Learning.MemorySize, cfg.Learning.BatchSize)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("reward:\n  goal_reward: 25\nlearning:\n  batch_size: 32\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reward.GoalReward != 25 {
		t.Errorf("goal reward = %v, want 25", cfg.Reward.GoalReward)
	}
	if cfg.Reward.CollisionPenalty != -10 {
		t.Errorf("collision penalty = %v, want default -10", cfg.Reward.CollisionPenalty)
	}
	if cfg.Learning.BatchSize != 32 {
		t.Errorf("batch size = %d, want 32", cfg.Learning.BatchSize)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"even sensors", func(c *Config) { c.Sensors.Count = 4 }},
		{"too few sensors", func(c *Config) { c.Sensors.Count = 1 }},
		{"batch above memory", func(c *Config) { c.Learning.BatchSize = c.Learning.MemorySize + 1 }},
		{"epsilon min above start", func(c *Config) { c.Learning.EpsilonMin = 1.5 }},
		{"no hidden layers", func(c *Config) { c.Network.HiddenLayers = nil }},
		{"margin too wide", func(c *Config) { c.Arena.TargetMargin = 400 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Reward.ProgressScale = 0.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Reward.ProgressScale != 0.25 {
		t.Errorf("progress scale = %v, want 0.25", loaded.Reward.ProgressScale)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Network.HiddenLayers[0] = 99
	if cfg.Network.HiddenLayers[0] == 99 {
		t.Error("Clone shares hidden layer slice with original")
	}
}
