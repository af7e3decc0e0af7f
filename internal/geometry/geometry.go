// Package geometry holds the 2D helpers used to score hand-drawn strokes.
package geometry

import "math"

// CanvasSize is the edge length of the square drawing canvas that stroke
// coordinates are expressed in.
const CanvasSize = 300.0

// endpointTolerance is the fraction of the canvas beyond which an endpoint
// distance scores zero.
const endpointTolerance = 0.3

// Point is a position on the drawing canvas.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Direction returns the angle in radians of the vector from a to b, in (-π, π].
func Direction(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// StrokeSimilarity scores how closely a drawn stroke follows a target stroke,
// in [0, 1]. Only the endpoints and the overall direction are compared:
//
//	norm(d)    = 1 - min(1, d / (CanvasSize * 0.3))
//	dir_sim    = 1 - min(1, |dirUser - dirTarget| / π)
//	similarity = (norm(start) + norm(end) + dir_sim) / 3
//
// Empty inputs score 0.
func StrokeSimilarity(user, target []Point) float64 {
	if len(user) == 0 || len(target) == 0 {
		return 0
	}

	userStart, userEnd := user[0], user[len(user)-1]
	targetStart, targetEnd := target[0], target[len(target)-1]

	startScore := normalizeDistance(Distance(userStart, targetStart))
	endScore := normalizeDistance(Distance(userEnd, targetEnd))

	userDir := Direction(userStart, userEnd)
	targetDir := Direction(targetStart, targetEnd)
	dirScore := 1 - math.Min(1, math.Abs(userDir-targetDir)/math.Pi)

	return (startScore + endScore + dirScore) / 3
}

func normalizeDistance(d float64) float64 {
	return 1 - math.Min(1, d/(CanvasSize*endpointTolerance))
}

// Interpolate returns n evenly spaced points from a to b inclusive.
// n below 2 yields just the two endpoints.
func Interpolate(a, b Point, n int) []Point {
	if n < 2 {
		return []Point{a, b}
	}
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		pts[i] = Point{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		}
	}
	return pts
}
