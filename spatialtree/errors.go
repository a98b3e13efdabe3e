// Package spatialtree builds the top-down KD-tree/octree hierarchy that
// partitions a point cloud into a hierarchy of balls. Construction
// validates eagerly and returns sentinel errors, never panicking on
// caller-supplied data.
package spatialtree

import "errors"

// ErrInvalidLeafCapacity indicates leaf_capacity < 1.
var ErrInvalidLeafCapacity = errors.New("spatialtree: leaf_capacity must be >= 1")

// ErrEmptyPoints indicates an empty point cloud was supplied to Build.
var ErrEmptyPoints = errors.New("spatialtree: point cloud must be non-empty")
