package systems

import "math"

// Point is a 2D point in canvas space.
type Point struct {
	X, Y float64
}

// Segment is a line segment from (X1, Y1) to (X2, Y2).
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return Distance(s.X1, s.Y1, s.X2, s.Y2)
}

// ArenaWalls returns the four boundary segments of a w x h arena
// in order: top, right, bottom, left.
func ArenaWalls(w, h float64) [4]Segment {
	return [4]Segment{
		{0, 0, w, 0},
		{w, 0, w, h},
		{w, h, 0, h},
		{0, h, 0, 0},
	}
}

// Intersect returns the crossing point of ray and wall.
// Both parametric values must lie strictly inside (0, 1); touching an endpoint
// is not a hit. Parallel and collinear segments never intersect.
func Intersect(ray, wall Segment) (Point, bool) {
	x1, y1, x2, y2 := ray.X1, ray.Y1, ray.X2, ray.Y2
	x3, y3, x4, y4 := wall.X1, wall.Y1, wall.X2, wall.Y2

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if den == 0 {
		return Point{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / den
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / den
	if t > 0 && t < 1 && u > 0 && u < 1 {
		return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}, true
	}
	return Point{}, false
}

// CastRay returns the hit nearest to the ray origin among all walls.
func CastRay(ray Segment, walls []Segment) (Point, bool) {
	var closest Point
	found := false
	minD := math.Inf(1)

	for _, wall := range walls {
		pt, ok := Intersect(ray, wall)
		if !ok {
			continue
		}
		if d := Distance(ray.X1, ray.Y1, pt.X, pt.Y); d < minD {
			minD = d
			closest = pt
			found = true
		}
	}
	return closest, found
}
