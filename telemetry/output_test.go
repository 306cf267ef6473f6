package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/seeker/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// All methods are nil-safe
	if err := om.WriteEpisode(EpisodeRecord{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("disabled manager reported a directory")
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteEpisode(EpisodeRecord{Episode: i, Ticks: 10 * i, Outcome: OutcomeGoal}); err != nil {
			t.Fatalf("WriteEpisode failed: %v", err)
		}
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "episodes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("episodes.csv has %d lines, want header + 3:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "episode,ticks,total_reward,outcome") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "episode,ticks") != 1 {
		t.Error("header written more than once")
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
