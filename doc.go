// Package kifmm implements a kernel-independent Fast Multipole Method
// (KIFMM) engine: given a set of source points with a density and a set
// of observation points, it evaluates pairwise Green's-function sums in
// O(n log n) instead of O(n^2), for any kernel registered by name in
// package kernel ("laplace" and "elastic").
//
// The engine is organized under subpackages:
//
//	ball/        — bounding balls and their geometric predicates
//	pointcloud/  — ordered point/normal storage with index permutation
//	spatialtree/ — top-down octree/KD-tree construction over a point cloud
//	surface/     — canonical translation surfaces and check-to-equivalent solves
//	kernel/      — the Green's function interface plus Laplace/elastic kernels
//	interaction/ — MAC-driven dual-tree interaction list construction
//	linalg/      — dense matrices, SVD pseudoinverse, eigen decomposition
//	fmm/         — Build/Evaluate: the precomputed engine and its passes
//
// A typical call pair builds two spatial trees (observation and source,
// which may be the same cloud), builds an FMM value once for a fixed
// geometry and kernel, then evaluates it against any number of density
// vectors:
//
//	obsTree, _ := spatialtree.Build(obsPoints, obsNormals, 50)
//	srcTree, _ := spatialtree.Build(srcPoints, srcNormals, 50)
//	f, _ := fmm.Build(obsTree, srcTree, fmm.DefaultConfig())
//	u, _ := f.Evaluate(density)
package kifmm
