package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/seeker/components"
	"github.com/pthm-cable/seeker/config"
)

func testSensorArray(t *testing.T) *SensorArray {
	t.Helper()
	return NewSensorArray(config.Default())
}

func TestSenseAtCenterSeesNothing(t *testing.T) {
	s := testSensorArray(t)
	frame := s.Sense(components.Pose{X: 400, Y: 300, Heading: -math.Pi / 2})

	if len(frame.Readings) != s.Count || len(frame.Rays) != s.Count {
		t.Fatalf("got %d readings / %d rays, want %d", len(frame.Readings), len(frame.Rays), s.Count)
	}
	for i, r := range frame.Readings {
		if r != 1 {
			t.Errorf("reading[%d] = %v, want 1 (no wall in range)", i, r)
		}
	}
	if frame.NearContact(s.NearField) {
		t.Error("center pose reported near contact")
	}
}

func TestSenseWallDirectlyAhead(t *testing.T) {
	s := testSensorArray(t)
	// Ray origin is 20 ahead of center at x=700; wall at x=800 is 100 away.
	frame := s.Sense(components.Pose{X: 680, Y: 300, Heading: 0})

	mid := s.Count / 2
	want := 100.0 / s.Length
	if math.Abs(frame.Readings[mid]-want) > 1e-9 {
		t.Errorf("center reading = %v, want %v", frame.Readings[mid], want)
	}
	ray := frame.Rays[mid]
	if math.Abs(ray.X2-800) > 1e-9 || math.Abs(ray.Y2-300) > 1e-9 {
		t.Errorf("center ray endpoint = (%v, %v), want (800, 300)", ray.X2, ray.Y2)
	}
}

func TestSenseRayFanIsSymmetric(t *testing.T) {
	s := testSensorArray(t)
	heading := 0.4

	first := s.RayAngle(heading, 0)
	last := s.RayAngle(heading, s.Count-1)
	if math.Abs(first-(heading-s.FOV/2)) > 1e-12 {
		t.Errorf("first ray angle = %v, want %v", first, heading-s.FOV/2)
	}
	if math.Abs(last-(heading+s.FOV/2)) > 1e-12 {
		t.Errorf("last ray angle = %v, want %v", last, heading+s.FOV/2)
	}
	if mid := s.RayAngle(heading, s.Count/2); math.Abs(mid-heading) > 1e-12 {
		t.Errorf("middle ray angle = %v, want heading %v", mid, heading)
	}
}

func TestSenseNearContact(t *testing.T) {
	s := testSensorArray(t)
	// Origin 5 units from the top wall: reading 5/120 < 0.1
	frame := s.Sense(components.Pose{X: 400, Y: 25, Heading: -math.Pi / 2})

	if !frame.NearContact(s.NearField) {
		t.Errorf("expected near contact, readings = %v", frame.Readings)
	}
}

func TestNearContact(t *testing.T) {
	tests := []struct {
		name     string
		readings []float64
		want     bool
	}{
		{"all clear", []float64{1, 1, 1, 1, 1}, false},
		{"at threshold", []float64{1, 0.1, 1}, false},
		{"one below", []float64{1, 0.5, 0.09, 1}, true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearContact(tt.readings, 0.1); got != tt.want {
				t.Errorf("NearContact(%v) = %v, want %v", tt.readings, got, tt.want)
			}
		})
	}
}

func TestRayStepFromConfig(t *testing.T) {
	cfg := config.Default()
	s := NewSensorArray(cfg)

	if s.Step != cfg.Derived.SensorStep {
		t.Fatalf("step = %v, want derived %v", s.Step, cfg.Derived.SensorStep)
	}
	if want := s.FOV / float64(s.Count-1); math.Abs(s.Step-want) > 1e-12 {
		t.Errorf("step = %v, want %v", s.Step, want)
	}
	for i := 1; i < s.Count; i++ {
		if d := s.RayAngle(0.3, i) - s.RayAngle(0.3, i-1); math.Abs(d-s.Step) > 1e-12 {
			t.Errorf("gap between rays %d and %d = %v, want %v", i-1, i, d, s.Step)
		}
	}
}

func TestSenseReadingsInUnitRange(t *testing.T) {
	s := testSensorArray(t)
	for x := 30.0; x < 800; x += 77 {
		for y := 30.0; y < 600; y += 61 {
			for h := -3.0; h < 3; h += 0.9 {
				frame := s.Sense(components.Pose{X: x, Y: y, Heading: h})
				for i, r := range frame.Readings {
					if r < 0 || r > 1 {
						t.Fatalf("reading[%d] = %v at (%v,%v,%v)", i, r, x, y, h)
					}
				}
			}
		}
	}
}
