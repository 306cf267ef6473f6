package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeker/components"
	"github.com/pthm-cable/seeker/config"
)

// SensorArray casts a symmetric fan of range rays from just ahead of the robot.
type SensorArray struct {
	Count     int
	Length    float64
	FOV       float64
	Offset    float64 // forward distance from the robot center to the ray origin
	NearField float64 // readings below this count as wall contact
	Step      float64 // angle between adjacent rays

	walls []Segment
}

// NewSensorArray builds a sensor array for the configured arena.
func NewSensorArray(cfg *config.Config) *SensorArray {
	walls := ArenaWalls(cfg.Arena.Width, cfg.Arena.Height)
	return &SensorArray{
		Count:     cfg.Sensors.Count,
		Length:    cfg.Sensors.Length,
		FOV:       cfg.Sensors.FOV,
		Offset:    cfg.Robot.Radius,
		NearField: cfg.Sensors.NearField,
		Step:      cfg.Derived.SensorStep,
		walls:     walls[:],
	}
}

// SensorFrame holds one complete set of readings and the rays that produced them.
type SensorFrame struct {
	Readings []float64
	Rays     []components.Ray
}

// NearContact reports whether any reading is inside the near-field threshold.
func (f SensorFrame) NearContact(threshold float64) bool {
	return NearContact(f.Readings, threshold)
}

// NearContact reports whether any of readings is below threshold.
func NearContact(readings []float64, threshold float64) bool {
	for _, r := range readings {
		if r < threshold {
			return true
		}
	}
	return false
}

// RayAngle returns the absolute angle of ray i for the given heading.
// Rays are evenly spaced and include both edges of the field of view.
func (s *SensorArray) RayAngle(heading float64, i int) float64 {
	return heading - s.FOV/2 + s.Step*float64(i)
}

// Sense computes all readings for pose. It has no side effects.
func (s *SensorArray) Sense(pose components.Pose) SensorFrame {
	frame := SensorFrame{
		Readings: make([]float64, s.Count),
		Rays:     make([]components.Ray, s.Count),
	}

	startX := pose.X + math.Cos(pose.Heading)*s.Offset
	startY := pose.Y + math.Sin(pose.Heading)*s.Offset

	for i := 0; i < s.Count; i++ {
		angle := s.RayAngle(pose.Heading, i)
		ray := Segment{
			X1: startX,
			Y1: startY,
			X2: startX + math.Cos(angle)*s.Length,
			Y2: startY + math.Sin(angle)*s.Length,
		}

		reading := 1.0
		if pt, ok := CastRay(ray, s.walls); ok {
			ray.X2, ray.Y2 = pt.X, pt.Y
			reading = ray.Length() / s.Length
		}

		frame.Readings[i] = reading
		frame.Rays[i] = components.Ray{X1: ray.X1, Y1: ray.Y1, X2: ray.X2, Y2: ray.Y2, Reading: reading}
	}
	return frame
}

// SensorSystem refreshes the Sensors component of every robot from its pose.
type SensorSystem struct {
	filter ecs.Filter2[components.Pose, components.Sensors]
	array  *SensorArray
}

// NewSensorSystem creates a new sensor system.
func NewSensorSystem(w *ecs.World, array *SensorArray) *SensorSystem {
	return &SensorSystem{
		filter: *ecs.NewFilter2[components.Pose, components.Sensors](w),
		array:  array,
	}
}

// Update replaces the readings of every sensed entity.
func (s *SensorSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pose, sensors := query.Get()
		frame := s.array.Sense(*pose)
		sensors.Readings = frame.Readings
		sensors.Rays = frame.Rays
	}
}
