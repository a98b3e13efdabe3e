// Package surface generates the canonical translation surfaces and solves
// the check-to-equivalent systems that make the engine kernel-independent.
// A translation surface is a fixed, shape-normalized point set on the unit
// sphere (3D) or unit circle (2D); per tree node it is placed by
// translate-and-scale around the node's center at a radius factor times the
// node's ball radius.
package surface

import (
	"errors"
	"math"
)

// ErrInvalidOrder indicates an order below the minimum usable surface
// density.
var ErrInvalidOrder = errors.New("surface: order must be >= 2")

// ErrUnsupportedDim indicates a dimension other than 2 or 3.
var ErrUnsupportedDim = errors.New("surface: dim must be 2 or 3")

// PointCount returns S, the number of points a canonical surface of the
// given order and dimension carries: 6*order^2 - 12*order + 8 in 3D,
// 4*order - 4 in 2D. Both are monotonic polynomials in order, so a larger
// order always yields a denser surface.
func PointCount(order, dim int) (int, error) {
	if order < 2 {
		return 0, ErrInvalidOrder
	}
	switch dim {
	case 3:
		return 6*order*order - 12*order + 8, nil
	case 2:
		return 4*order - 4, nil
	default:
		return 0, ErrUnsupportedDim
	}
}

// MakeSurface returns S points of the canonical translation surface for the
// given order and dimension, each point lying exactly on the unit
// sphere/circle (dim-dimensional, centered at the origin). For dim == 3 the
// points are placed by a Fibonacci (golden-spiral) lattice, which gives
// near-uniform coverage without the pole-clustering of a naive
// latitude/longitude grid. For dim == 2 the points are the vertices of a
// regular S-gon. Deterministic: calling MakeSurface twice with the same
// (order, dim) always yields the same points in the same order.
func MakeSurface(order, dim int) ([][]float64, error) {
	s, err := PointCount(order, dim)
	if err != nil {
		return nil, err
	}
	switch dim {
	case 3:
		return fibonacciSphere(s), nil
	case 2:
		return regularPolygon(s), nil
	default:
		return nil, ErrUnsupportedDim
	}
}

// fibonacciSphere places n points on the unit 2-sphere via the golden-angle
// spiral construction: for i in [0,n), z_i is evenly spaced in [-1,1] and
// the azimuthal angle advances by the golden angle each step.
func fibonacciSphere(n int) [][]float64 {
	pts := make([][]float64, n)
	if n == 0 {
		return pts
	}
	const goldenAngle = math.Pi * (3 - 1.6180339887498949) // pi*(3-phi)
	for i := 0; i < n; i++ {
		// z spans [-1,1] including both poles for n>1, symmetric about 0.
		var z float64
		if n == 1 {
			z = 0
		} else {
			z = 1 - 2*float64(i)/float64(n-1)
		}
		radial := math.Sqrt(math.Max(0, 1-z*z))
		theta := goldenAngle * float64(i)
		pts[i] = []float64{radial * math.Cos(theta), radial * math.Sin(theta), z}
	}
	return pts
}

// regularPolygon places n points evenly around the unit circle.
func regularPolygon(n int) [][]float64 {
	pts := make([][]float64, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = []float64{math.Cos(theta), math.Sin(theta)}
	}
	return pts
}

// Place scales and translates a canonical surface (as returned by
// MakeSurface) to radius r around center, returning a freshly allocated
// point set. The canonical surface itself is never mutated: callers are
// expected to cache the canonical surface once and call Place per node.
func Place(canonical [][]float64, center []float64, r float64) [][]float64 {
	out := make([][]float64, len(canonical))
	for i, p := range canonical {
		q := make([]float64, len(p))
		for d := range p {
			q[d] = center[d] + r*p[d]
		}
		out[i] = q
	}
	return out
}

// OutwardNormals returns copies of the canonical surface points themselves
// as their own outward normals, without renormalizing them: by construction
// every MakeSurface point already lies at unit distance from the origin, so
// the outward normal at a placed surface point equals the corresponding
// canonical point.
func OutwardNormals(canonical [][]float64) [][]float64 {
	out := make([][]float64, len(canonical))
	for i, p := range canonical {
		q := make([]float64, len(p))
		copy(q, p)
		out[i] = q
	}
	return out
}
