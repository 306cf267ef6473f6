package components

// Pose represents the robot's position and heading.
// Heading is in radians and is not normalized.
type Pose struct {
	X, Y    float64
	Heading float64
}

// Motion holds the speed and turn rate applied during the last tick.
type Motion struct {
	Speed float64 // signed, canvas units per tick
	Turn  float64 // radians per tick
}

// Target is the point the robot is steering toward.
type Target struct {
	X, Y float64
}
