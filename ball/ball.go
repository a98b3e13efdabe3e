// Package ball provides the d-dimensional bounding-ball geometry the
// spatial tree is built from: containment tests, per-axis extent, and a
// Ritter two-pass approximate smallest enclosing ball, generalized from a
// 2D integer grid of cells and neighbor offsets to a float64,
// d-dimensional ball.
package ball

import "math"

// Ball is a center and radius in d-dimensional space, d inferred from
// len(Center). A point p lies inside b iff Contains(p, 0) reports true.
type Ball struct {
	Center []float64
	Radius float64
}

// Dim returns the dimensionality of the ball.
func (b Ball) Dim() int { return len(b.Center) }

// Contains reports whether p lies within the ball, allowing tol extra
// radius (tol == 0 enforces strict containment up to floating error).
// Complexity: O(d).
func (b Ball) Contains(p []float64, tol float64) bool {
	return dist(b.Center, p) <= b.Radius+tol
}

func dist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Dist returns the Euclidean distance between two ball centers (or any two
// points of matching dimension); used by the MAC test in package
// interaction.
func Dist(a, b []float64) float64 { return dist(a, b) }

// Extent returns, for each axis, the [min, max] range spanned by points.
// Complexity: O(n*d).
func Extent(points [][]float64) (min, max []float64) {
	d := len(points[0])
	min = make([]float64, d)
	max = make([]float64, d)
	copy(min, points[0])
	copy(max, points[0])
	for _, p := range points[1:] {
		for axis := 0; axis < d; axis++ {
			if p[axis] < min[axis] {
				min[axis] = p[axis]
			}
			if p[axis] > max[axis] {
				max[axis] = p[axis]
			}
		}
	}
	return min, max
}

// Centroid returns the arithmetic mean of points, used as the octree
// split point for a node.
// Complexity: O(n*d).
func Centroid(points [][]float64) []float64 {
	d := len(points[0])
	c := make([]float64, d)
	for _, p := range points {
		for axis := 0; axis < d; axis++ {
			c[axis] += p[axis]
		}
	}
	n := float64(len(points))
	for axis := range c {
		c[axis] /= n
	}
	return c
}

// minRadius floors the radius of degenerate (all-coincident) point sets so
// recursive partitioning cannot spin forever subdividing a single physical
// location.
const minRadius = 1e-30

// BoundingBall computes an approximate smallest enclosing ball of points
// using Ritter's two-pass heuristic: pick an arbitrary point, find the
// farthest point from it (A), find the farthest point from A (B), seed the
// ball on segment AB, then expand to cover any point still outside.
// Containment is exact (no point is ever left outside); the ball need not
// be minimal.
// Complexity: O(n*d) time, O(d) space.
func BoundingBall(points [][]float64) Ball {
	d := len(points[0])
	if len(points) == 1 {
		c := make([]float64, d)
		copy(c, points[0])
		return Ball{Center: c, Radius: minRadius}
	}

	// Pass 1: farthest point A from an arbitrary seed.
	seed := points[0]
	a := seed
	best := -1.0
	for _, p := range points {
		if dd := dist(seed, p); dd > best {
			best, a = dd, p
		}
	}
	// Pass 2: farthest point B from A.
	b := a
	best = -1.0
	for _, p := range points {
		if dd := dist(a, p); dd > best {
			best, b = dd, p
		}
	}

	center := make([]float64, d)
	for i := 0; i < d; i++ {
		center[i] = (a[i] + b[i]) / 2
	}
	radius := dist(a, b) / 2

	// Expand to cover any straggler.
	for _, p := range points {
		dd := dist(center, p)
		if dd > radius {
			// Move center toward p by half the overshoot, grow radius to match.
			excess := (dd - radius) / 2
			radius += excess
			ratio := excess / dd
			for axis := 0; axis < d; axis++ {
				center[axis] += (p[axis] - center[axis]) * ratio
			}
		}
	}
	if radius < minRadius {
		radius = minRadius
	}
	return Ball{Center: center, Radius: radius}
}
