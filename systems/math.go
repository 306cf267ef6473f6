package systems

import "math"

// Angle normalization functions

// WrapAngle wraps an angle into (-Pi, Pi].
// WrapAngle(WrapAngle(a)) == WrapAngle(a) for every finite a.
func WrapAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi) // [-Pi, Pi]
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Distance functions

// DistanceSq returns the squared distance between two points.
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSq(x1, y1, x2, y2))
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
