// Package pointcloud holds the ordered points, unit normals, and original
// index permutation that flow through the spatial tree builder. It is a
// plain data carrier, kept deliberately unadorned (no locking, no hidden
// state) since the lifecycle model has exactly one writer (the tree
// builder, at construction time) and many readers thereafter.
package pointcloud

import "errors"

// ErrShapeMismatch indicates Points and Normals have different lengths, or
// a normal's dimensionality does not match its point's.
var ErrShapeMismatch = errors.New("pointcloud: points and normals shape mismatch")

// Cloud is an ordered set of d-dimensional points with parallel unit
// normals. OrigIdx records, after any in-place reordering, the original
// position each current slot came from: OrigIdx[newPos] = originalPos.
type Cloud struct {
	Points  [][]float64
	Normals [][]float64
	OrigIdx []int
}

// New validates and wraps points/normals into a Cloud with the identity
// permutation (no reordering has happened yet).
// Complexity: O(n*d).
func New(points, normals [][]float64) (*Cloud, error) {
	if len(points) != len(normals) {
		return nil, ErrShapeMismatch
	}
	if len(points) > 0 {
		d := len(points[0])
		for i := range points {
			if len(points[i]) != d || len(normals[i]) != d {
				return nil, ErrShapeMismatch
			}
		}
	}
	orig := make([]int, len(points))
	for i := range orig {
		orig[i] = i
	}
	return &Cloud{Points: points, Normals: normals, OrigIdx: orig}, nil
}

// Len returns the number of points in the cloud.
func (c *Cloud) Len() int { return len(c.Points) }

// Permute applies a same-length reorder to Points, Normals and OrigIdx in
// place: newPoints[i] = oldPoints[order[i]]. Used by the tree builder to
// physically group each node's points into a contiguous range.
// Complexity: O(n*d) time, O(n*d) space (one scratch copy).
func (c *Cloud) Permute(order []int) {
	n := len(order)
	newPoints := make([][]float64, n)
	newNormals := make([][]float64, n)
	newOrig := make([]int, n)
	for i, srcIdx := range order {
		newPoints[i] = c.Points[srcIdx]
		newNormals[i] = c.Normals[srcIdx]
		newOrig[i] = c.OrigIdx[srcIdx]
	}
	c.Points = newPoints
	c.Normals = newNormals
	c.OrigIdx = newOrig
}

// PermuteValues reorders a caller vector expressed in tree-reordered index
// order back into original order, or vice versa depending on invert.
// length must equal len(orig)*stride (stride == tensor dim T).
// Complexity: O(n*stride).
func PermuteValues(values []float64, origIdx []int, stride int, toOriginal bool) ([]float64, error) {
	n := len(origIdx)
	if len(values) != n*stride {
		return nil, ErrShapeMismatch
	}
	out := make([]float64, len(values))
	for newPos, origPos := range origIdx {
		var srcOff, dstOff int
		if toOriginal {
			srcOff, dstOff = newPos*stride, origPos*stride
		} else {
			srcOff, dstOff = origPos*stride, newPos*stride
		}
		copy(out[dstOff:dstOff+stride], values[srcOff:srcOff+stride])
	}
	return out, nil
}
