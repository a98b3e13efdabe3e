// Package fmm assembles the spatial trees, translation surfaces,
// check-to-equivalent operator cache and dual-tree interaction lists into a
// single precomputed FMM value, then evaluates densities against it via the
// upward/downward passes. Concurrency across independent work within a
// phase follows a staged-pipeline idiom, bounded by golang.org/x/sync's
// errgroup/semaphore rather than a hand-rolled worker pool.
package fmm

import (
	"errors"
	"math"

	"github.com/gokifmm/kifmm/interaction"
	"github.com/gokifmm/kifmm/kernel"
	"github.com/gokifmm/kifmm/linalg"
	"github.com/gokifmm/kifmm/spatialtree"
	"github.com/gokifmm/kifmm/surface"
)

// FMM is the precomputed engine returned by Build: trees, interaction
// lists, and a read-only U2E/D2E operator cache, ready for repeated calls
// to Evaluate with different densities.
type FMM struct {
	cfg    Config
	kern   kernel.Kernel
	dim    int
	s      int // translation surface point count
	t      int // kernel tensor dimension

	obsTree *spatialtree.Tree
	srcTree *spatialtree.Tree

	canonical [][]float64 // unit surface, order-dependent, dim-dependent
	canonNrm  [][]float64 // outward normals == canonical points themselves

	u2e map[int]*linalg.Dense // keyed by quantizeRadius(node radius)
	d2e map[int]*linalg.Dense

	lists *interaction.Lists
}

// quantizeRadius buckets a radius to its base-2 exponent so that nodes of
// near-identical scale share one operator cache entry.
func quantizeRadius(r float64) int {
	if r <= 0 {
		return math.MinInt32
	}
	return int(math.Round(math.Log2(r)))
}

// Build performs all precomputation: surface generation, U2E/D2E operator
// cache, and the dual-tree interaction lists. obsTree and srcTree already
// carry their (tree-reordered) points and normals in their Cloud, so a
// separately passed normals argument would be redundant; it is folded into
// the trees themselves here.
func Build(obsTree, srcTree *spatialtree.Tree, cfg Config) (*FMM, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	k, err := kernel.New(cfg.KernelName, cfg.Params)
	if err != nil {
		return nil, ErrInvalidConfig
	}

	dim := obsTree.Root().Bounds.Dim()
	if srcTree.Root().Bounds.Dim() != dim {
		return nil, ErrShapeMismatch
	}

	canonical, err := surface.MakeSurface(cfg.Order, dim)
	if err != nil {
		return nil, ErrInvalidConfig
	}
	s, err := surface.PointCount(cfg.Order, dim)
	if err != nil {
		return nil, ErrInvalidConfig
	}

	f := &FMM{
		cfg:       cfg,
		kern:      k,
		dim:       dim,
		s:         s,
		t:         k.TensorDim(),
		obsTree:   obsTree,
		srcTree:   srcTree,
		canonical: canonical,
		canonNrm:  surface.OutwardNormals(canonical),
		u2e:       make(map[int]*linalg.Dense),
		d2e:       make(map[int]*linalg.Dense),
	}

	if err := f.precomputeOperators(srcTree, f.u2e, true); err != nil {
		return nil, err
	}
	if err := f.precomputeOperators(obsTree, f.d2e, false); err != nil {
		return nil, err
	}

	lists, err := interaction.Build(obsTree, srcTree, cfg.MAC)
	if err != nil {
		return nil, err
	}
	f.lists = lists

	return f, nil
}

// precomputeOperators fills cache with one pseudoinverse per distinct
// quantized radius appearing among tree's nodes. upward selects the U2E
// placement (equivalent surface at InnerR, check surface at OuterR);
// downward (upward == false) selects the D2E placement, the symmetric pair
// with InnerR/OuterR swapped.
func (f *FMM) precomputeOperators(tree *spatialtree.Tree, cache map[int]*linalg.Dense, upward bool) error {
	center := make([]float64, f.dim)
	for _, n := range tree.Nodes {
		key := quantizeRadius(n.Bounds.Radius)
		if _, ok := cache[key]; ok {
			continue
		}
		var equivR, checkR float64
		if upward {
			equivR, checkR = f.cfg.InnerR*n.Bounds.Radius, f.cfg.OuterR*n.Bounds.Radius
		} else {
			equivR, checkR = f.cfg.OuterR*n.Bounds.Radius, f.cfg.InnerR*n.Bounds.Radius
		}
		equiv := surface.Place(f.canonical, center, equivR)
		check := surface.Place(f.canonical, center, checkR)

		p, err := surface.SolveC2E(f.kern, equiv, f.canonNrm, check, f.canonNrm, f.cfg.SVDThreshold)
		if err != nil {
			if errors.Is(err, linalg.ErrSingular) {
				return ErrNumericallySingular
			}
			return ErrKernelError
		}
		cache[key] = p
	}
	return nil
}

// operatorFor looks up the cached pseudoinverse for a node's radius. Every
// radius appearing in the tree was precomputed in Build, so a miss here
// indicates a node added after Build -- never possible through this
// package's API -- and is treated as a programmer error via a nil return;
// callers are internal and always check.
func operatorFor(cache map[int]*linalg.Dense, radius float64) (*linalg.Dense, bool) {
	p, ok := cache[quantizeRadius(radius)]
	return p, ok
}
