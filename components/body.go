package components

// Body holds physical properties of the robot.
type Body struct {
	Radius float64
}

// Ray is one sensor ray clipped to its hit point.
type Ray struct {
	X1, Y1  float64
	X2, Y2  float64
	Reading float64 // fraction of sensor length, 1 = no hit
}

// Sensors holds the readings from the most recent sense pass.
// Both slices are replaced wholesale every tick.
type Sensors struct {
	Readings []float64
	Rays     []Ray
}
