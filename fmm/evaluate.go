package fmm

import (
	"github.com/gokifmm/kifmm/linalg"
	"github.com/gokifmm/kifmm/surface"
)

// Evaluate runs the full upward pass, translations (M2L/P2L/M2P), and
// downward pass against density q, returning the potential u at every
// observation point. q and the returned u are
// both expressed in tree-reordered index order; callers recover original
// order via obsTree.Cloud.OrigIdx / pointcloud.PermuteValues.
func (f *FMM) Evaluate(q []float64) ([]float64, error) {
	if len(q) != f.srcTree.Cloud.Len()*f.t {
		return nil, ErrShapeMismatch
	}

	m, err := f.upwardPass(q)
	if err != nil {
		return nil, err
	}

	checkPotential := make([][]float64, len(f.obsTree.Nodes))
	for i := range checkPotential {
		checkPotential[i] = make([]float64, f.s*f.t)
	}
	if err := f.accumulateM2L(checkPotential, m); err != nil {
		return nil, err
	}
	if err := f.accumulateP2L(checkPotential, q); err != nil {
		return nil, err
	}

	l, err := f.downwardSweep(checkPotential)
	if err != nil {
		return nil, err
	}

	u := make([]float64, f.obsTree.Cloud.Len()*f.t)
	if err := f.l2p(l, u); err != nil {
		return nil, err
	}
	if err := f.m2p(m, u); err != nil {
		return nil, err
	}
	if err := f.p2p(q, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EvaluateP2POnly evaluates the dense direct sum with no tree
// approximation, for testing and accuracy baselines.
func (f *FMM) EvaluateP2POnly(q []float64) ([]float64, error) {
	if len(q) != f.srcTree.Cloud.Len()*f.t {
		return nil, ErrShapeMismatch
	}
	u := make([]float64, f.obsTree.Cloud.Len()*f.t)
	contrib, err := f.applyKernel(f.obsTree.Cloud.Points, f.obsTree.Cloud.Normals, f.srcTree.Cloud.Points, f.srcTree.Cloud.Normals, q)
	if err != nil {
		return nil, err
	}
	// Self-interactions (coincident obs/src points) are defined as zero by
	// every kernel's own Evaluate contract, so no separate masking is
	// needed here even when obsTree and srcTree share the same cloud.
	addInto(u, contrib)
	return u, nil
}

// applyKernel builds the dense (len(obsPts)*T, len(srcPts)*T) interaction
// matrix via f.kern.Evaluate and multiplies it by density, returning the
// resulting (len(obsPts)*T)-length vector.
func (f *FMM) applyKernel(obsPts, obsNormals, srcPts, srcNormals [][]float64, density []float64) ([]float64, error) {
	a, err := linalg.NewDense(len(obsPts)*f.t, len(srcPts)*f.t)
	if err != nil {
		return nil, err
	}
	if err := f.kern.Evaluate(obsPts, obsNormals, srcPts, srcNormals, a.Raw()); err != nil {
		return nil, ErrKernelError
	}
	return linalg.MatVec(a, density)
}

func addInto(dst, src []float64) {
	for i, v := range src {
		dst[i] += v
	}
}

// upwardPass computes m[node] for every source-tree node, leaves-first,
// serialized by height and parallel within a height.
func (f *FMM) upwardPass(q []float64) ([][]float64, error) {
	nodes := f.srcTree.Nodes
	m := make([][]float64, len(nodes))
	byHeight := groupByHeight(nodes)

	for h := 0; h < len(byHeight); h++ {
		group := byHeight[h]
		err := parallelFor(len(group), func(gi int) error {
			i := group[gi]
			n := &nodes[i]
			checkR := f.cfg.OuterR * n.Bounds.Radius
			check := surface.Place(f.canonical, n.Bounds.Center, checkR)

			var c []float64
			if n.IsLeaf {
				cloud := f.srcTree.Cloud
				pts := cloud.Points[n.Start:n.End]
				nrm := cloud.Normals[n.Start:n.End]
				density := q[n.Start*f.t : n.End*f.t]
				contrib, err := f.applyKernel(check, f.canonNrm, pts, nrm, density)
				if err != nil {
					return err
				}
				c = contrib
			} else {
				c = make([]float64, f.s*f.t)
				for _, ci := range n.Children {
					child := &nodes[ci]
					equivR := f.cfg.InnerR * child.Bounds.Radius
					equiv := surface.Place(f.canonical, child.Bounds.Center, equivR)
					contrib, err := f.applyKernel(check, f.canonNrm, equiv, f.canonNrm, m[ci])
					if err != nil {
						return err
					}
					addInto(c, contrib)
				}
			}

			u2e, ok := operatorFor(f.u2e, n.Bounds.Radius)
			if !ok {
				return ErrNumericallySingular
			}
			mv, err := linalg.MatVec(u2e, c)
			if err != nil {
				return ErrShapeMismatch
			}
			m[i] = mv
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// accumulateM2L adds every M2L list entry's contribution into the obs
// node's downward check-potential: kernel from the src node's upward
// equivalent surface to the obs node's downward check surface.
func (f *FMM) accumulateM2L(checkPotential, m [][]float64) error {
	list := f.lists.M2L
	obsNodes, srcNodes := f.obsTree.Nodes, f.srcTree.Nodes
	return parallelFor(list.Len(), func(i int) error {
		obsIdx := list.ObsNodeIDs[i]
		obsNode := &obsNodes[obsIdx]
		checkR := f.cfg.InnerR * obsNode.Bounds.Radius
		check := surface.Place(f.canonical, obsNode.Bounds.Center, checkR)
		for _, srcIdx := range list.Sources(i) {
			srcNode := &srcNodes[srcIdx]
			equivR := f.cfg.InnerR * srcNode.Bounds.Radius
			equiv := surface.Place(f.canonical, srcNode.Bounds.Center, equivR)
			contrib, err := f.applyKernel(check, f.canonNrm, equiv, f.canonNrm, m[srcIdx])
			if err != nil {
				return err
			}
			addInto(checkPotential[obsIdx], contrib)
		}
		return nil
	})
}

// accumulateP2L adds every P2L list entry's contribution into the obs
// node's downward check-potential: kernel from the src leaf's raw points
// to the obs node's downward check surface.
func (f *FMM) accumulateP2L(checkPotential [][]float64, q []float64) error {
	list := f.lists.P2L
	obsNodes, srcNodes := f.obsTree.Nodes, f.srcTree.Nodes
	srcCloud := f.srcTree.Cloud
	return parallelFor(list.Len(), func(i int) error {
		obsIdx := list.ObsNodeIDs[i]
		obsNode := &obsNodes[obsIdx]
		checkR := f.cfg.InnerR * obsNode.Bounds.Radius
		check := surface.Place(f.canonical, obsNode.Bounds.Center, checkR)
		for _, srcIdx := range list.Sources(i) {
			srcNode := &srcNodes[srcIdx]
			pts := srcCloud.Points[srcNode.Start:srcNode.End]
			nrm := srcCloud.Normals[srcNode.Start:srcNode.End]
			density := q[srcNode.Start*f.t : srcNode.End*f.t]
			contrib, err := f.applyKernel(check, f.canonNrm, pts, nrm, density)
			if err != nil {
				return err
			}
			addInto(checkPotential[obsIdx], contrib)
		}
		return nil
	})
}

// downwardSweep finalizes l[node] = D2E_node * checkPotential[node] for
// every obs-tree node, depth-first (ascending depth, i.e. parent before
// child, since node indices are assigned in pre-order), propagating each
// node's L2L contribution into its children's check-potential before
// moving to the next depth.
func (f *FMM) downwardSweep(checkPotential [][]float64) ([][]float64, error) {
	nodes := f.obsTree.Nodes
	l := make([][]float64, len(nodes))
	byDepth := groupByDepth(nodes)

	for d := 0; d < len(byDepth); d++ {
		group := byDepth[d]
		err := parallelFor(len(group), func(gi int) error {
			i := group[gi]
			n := &nodes[i]
			d2e, ok := operatorFor(f.d2e, n.Bounds.Radius)
			if !ok {
				return ErrNumericallySingular
			}
			li, err := linalg.MatVec(d2e, checkPotential[i])
			if err != nil {
				return ErrShapeMismatch
			}
			l[i] = li

			if n.IsLeaf {
				return nil
			}
			equivR := f.cfg.OuterR * n.Bounds.Radius
			equiv := surface.Place(f.canonical, n.Bounds.Center, equivR)
			for _, ci := range n.Children {
				child := &nodes[ci]
				checkR := f.cfg.InnerR * child.Bounds.Radius
				check := surface.Place(f.canonical, child.Bounds.Center, checkR)
				contrib, err := f.applyKernel(check, f.canonNrm, equiv, f.canonNrm, li)
				if err != nil {
					return err
				}
				addInto(checkPotential[ci], contrib)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return l, nil
}

// l2p evaluates each obs leaf's downward equivalent surface (density l)
// against its own points, adding the result into u.
func (f *FMM) l2p(l [][]float64, u []float64) error {
	nodes := f.obsTree.Nodes
	cloud := f.obsTree.Cloud
	leaves := leafIndices(nodes)
	return parallelFor(len(leaves), func(gi int) error {
		i := leaves[gi]
		n := &nodes[i]
		equivR := f.cfg.OuterR * n.Bounds.Radius
		equiv := surface.Place(f.canonical, n.Bounds.Center, equivR)
		pts := cloud.Points[n.Start:n.End]
		nrm := cloud.Normals[n.Start:n.End]
		contrib, err := f.applyKernel(pts, nrm, equiv, f.canonNrm, l[i])
		if err != nil {
			return err
		}
		addInto(u[n.Start*f.t:n.End*f.t], contrib)
		return nil
	})
}

// m2p adds every M2P list entry's contribution (src node's upward
// equivalent surface, evaluated directly at the obs leaf's own points)
// into u.
func (f *FMM) m2p(m [][]float64, u []float64) error {
	list := f.lists.M2P
	obsNodes, srcNodes := f.obsTree.Nodes, f.srcTree.Nodes
	obsCloud := f.obsTree.Cloud
	return parallelFor(list.Len(), func(i int) error {
		obsIdx := list.ObsNodeIDs[i]
		obsNode := &obsNodes[obsIdx]
		pts := obsCloud.Points[obsNode.Start:obsNode.End]
		nrm := obsCloud.Normals[obsNode.Start:obsNode.End]
		for _, srcIdx := range list.Sources(i) {
			srcNode := &srcNodes[srcIdx]
			equivR := f.cfg.InnerR * srcNode.Bounds.Radius
			equiv := surface.Place(f.canonical, srcNode.Bounds.Center, equivR)
			contrib, err := f.applyKernel(pts, nrm, equiv, f.canonNrm, m[srcIdx])
			if err != nil {
				return err
			}
			addInto(u[obsNode.Start*f.t:obsNode.End*f.t], contrib)
		}
		return nil
	})
}

// p2p adds every P2P list entry's direct nearfield contribution into u.
func (f *FMM) p2p(q []float64, u []float64) error {
	list := f.lists.P2P
	obsNodes, srcNodes := f.obsTree.Nodes, f.srcTree.Nodes
	obsCloud, srcCloud := f.obsTree.Cloud, f.srcTree.Cloud
	return parallelFor(list.Len(), func(i int) error {
		obsIdx := list.ObsNodeIDs[i]
		obsNode := &obsNodes[obsIdx]
		obsPts := obsCloud.Points[obsNode.Start:obsNode.End]
		obsNrm := obsCloud.Normals[obsNode.Start:obsNode.End]
		for _, srcIdx := range list.Sources(i) {
			srcNode := &srcNodes[srcIdx]
			srcPts := srcCloud.Points[srcNode.Start:srcNode.End]
			srcNrm := srcCloud.Normals[srcNode.Start:srcNode.End]
			density := q[srcNode.Start*f.t : srcNode.End*f.t]
			contrib, err := f.applyKernel(obsPts, obsNrm, srcPts, srcNrm, density)
			if err != nil {
				return err
			}
			addInto(u[obsNode.Start*f.t:obsNode.End*f.t], contrib)
		}
		return nil
	})
}
