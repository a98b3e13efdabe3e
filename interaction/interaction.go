// Package interaction builds the compressed dual-tree interaction lists
// (P2P, M2L, P2L, M2P), keyed by pairs of observation/source tree nodes,
// driven by a Multipole
// Acceptance Criterion (MAC). Each list is a three-array CSR-like structure
// mirroring a traversal-plus-hook style, adapted here to a dual-tree
// recursive descent instead of a single-graph BFS/DFS.
package interaction

import (
	"errors"
	"math"

	"github.com/gokifmm/kifmm/ball"
	"github.com/gokifmm/kifmm/spatialtree"
)

// ErrEmptyTree indicates a traversal was requested over a tree with no nodes.
var ErrEmptyTree = errors.New("interaction: tree has no nodes")

// List is the CSR-like compressed representation of one interaction kind:
// observation node ObsNodeIDs[i] interacts with every source node in
// SrcNodeIDs[ObsSrcStarts[i]:ObsSrcStarts[i+1]]. Entries within an
// observation node are in source-tree pre-order; entries across
// observation nodes are in observation-tree pre-order.
type List struct {
	ObsNodeIDs   []int
	ObsSrcStarts []int
	SrcNodeIDs   []int
}

// Len returns the number of observation nodes carrying at least one entry.
func (l *List) Len() int { return len(l.ObsNodeIDs) }

// Sources returns the source node ids attached to the i-th observation
// node entry in the list.
func (l *List) Sources(i int) []int {
	return l.SrcNodeIDs[l.ObsSrcStarts[i]:l.ObsSrcStarts[i+1]]
}

// Lists holds the four pairwise interaction lists a dual-tree traversal
// produces.
type Lists struct {
	P2P *List
	M2L *List
	P2L *List
	M2P *List
}

type pair struct{ obs, src int }

type rawLists struct {
	p2p, m2l, p2l, m2p []pair
}

// Build runs the MAC-driven dual-tree recursion from (obsTree.Root(),
// srcTree.Root()) and returns the four compressed interaction lists.
// Deterministic: entries are collected in any recursion order but then
// canonicalized by (preorder obs index, preorder src index), matching the
// ordering contract regardless of descent order.
func Build(obsTree, srcTree *spatialtree.Tree, mac float64) (*Lists, error) {
	if len(obsTree.Nodes) == 0 || len(srcTree.Nodes) == 0 {
		return nil, ErrEmptyTree
	}

	var raw rawLists
	traverse(obsTree, srcTree, 0, 0, mac, &raw)

	return &Lists{
		P2P: compress(raw.p2p),
		M2L: compress(raw.m2l),
		P2L: compress(raw.p2l),
		M2P: compress(raw.m2p),
	}, nil
}

// WellSeparated implements the Multipole Acceptance Criterion test: a pair
// is well separated iff d > (ro+rs)/mac (the primary formulation) AND
// max(ro,rs)/(d-min(ro,rs)) < mac (the equivalent formulation used in the
// source), using the stricter (AND, not OR) of the two wherever they
// diverge at the boundary.
func WellSeparated(obsB, srcB ball.Ball, mac float64) bool {
	d := ball.Dist(obsB.Center, srcB.Center)
	ro, rs := obsB.Radius, srcB.Radius

	primary := d > (ro+rs)/mac

	minR, maxR := math.Min(ro, rs), math.Max(ro, rs)
	denom := d - minR
	equivalent := denom > 0 && maxR/denom < mac

	return primary && equivalent
}

func traverse(obsTree, srcTree *spatialtree.Tree, obsIdx, srcIdx int, mac float64, out *rawLists) {
	obsNode := &obsTree.Nodes[obsIdx]
	srcNode := &srcTree.Nodes[srcIdx]
	p := pair{obs: obsIdx, src: srcIdx}

	if WellSeparated(obsNode.Bounds, srcNode.Bounds, mac) {
		switch {
		case obsNode.IsLeaf && !srcNode.IsLeaf:
			out.m2p = append(out.m2p, p)
		case srcNode.IsLeaf && !obsNode.IsLeaf:
			out.p2l = append(out.p2l, p)
		default:
			out.m2l = append(out.m2l, p)
		}
		return
	}

	if obsNode.IsLeaf && srcNode.IsLeaf {
		out.p2p = append(out.p2p, p)
		return
	}

	if srcNode.IsLeaf {
		for _, c := range obsNode.Children {
			traverse(obsTree, srcTree, c, srcIdx, mac, out)
		}
		return
	}
	if obsNode.IsLeaf {
		for _, c := range srcNode.Children {
			traverse(obsTree, srcTree, obsIdx, c, mac, out)
		}
		return
	}

	if obsNode.Bounds.Radius > srcNode.Bounds.Radius {
		for _, c := range obsNode.Children {
			traverse(obsTree, srcTree, c, srcIdx, mac, out)
		}
	} else {
		for _, c := range srcNode.Children {
			traverse(obsTree, srcTree, obsIdx, c, mac, out)
		}
	}
}

// compress canonicalizes a set of (obs,src) pairs discovered in arbitrary
// recursion order into the CSR form ordered by (obs preorder index, src
// preorder index). Node indices in spatialtree are assigned in preorder
// already (spatialtree.Build's documented invariant), so a plain
// numeric sort realizes the ordering contract directly.
func compress(pairs []pair) *List {
	bucket := make(map[int][]int)
	var obsOrder []int
	for _, pr := range pairs {
		if _, seen := bucket[pr.obs]; !seen {
			obsOrder = append(obsOrder, pr.obs)
		}
		bucket[pr.obs] = append(bucket[pr.obs], pr.src)
	}
	insertionSortInts(obsOrder)

	l := &List{ObsSrcStarts: []int{0}}
	for _, obs := range obsOrder {
		srcs := bucket[obs]
		insertionSortInts(srcs)
		l.ObsNodeIDs = append(l.ObsNodeIDs, obs)
		l.SrcNodeIDs = append(l.SrcNodeIDs, srcs...)
		l.ObsSrcStarts = append(l.ObsSrcStarts, len(l.SrcNodeIDs))
	}
	return l
}

func insertionSortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
