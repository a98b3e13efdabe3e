package fmm

import "github.com/gokifmm/kifmm/spatialtree"

// groupByHeight buckets node indices by Height, ascending (leaves at index
// 0). Used to serialize the upward pass across levels while allowing
// concurrency within one level.
func groupByHeight(nodes []spatialtree.Node) [][]int {
	maxHeight := 0
	for _, n := range nodes {
		if n.Height > maxHeight {
			maxHeight = n.Height
		}
	}
	groups := make([][]int, maxHeight+1)
	for i, n := range nodes {
		groups[n.Height] = append(groups[n.Height], i)
	}
	return groups
}

// groupByDepth buckets node indices by Depth, ascending (root at index 0).
// Used to serialize the downward pass across levels while allowing
// concurrency within one level.
func groupByDepth(nodes []spatialtree.Node) [][]int {
	maxDepth := 0
	for _, n := range nodes {
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}
	groups := make([][]int, maxDepth+1)
	for i, n := range nodes {
		groups[n.Depth] = append(groups[n.Depth], i)
	}
	return groups
}

// leafIndices returns the indices of every leaf node, in ascending
// (pre-order) order.
func leafIndices(nodes []spatialtree.Node) []int {
	var leaves []int
	for i, n := range nodes {
		if n.IsLeaf {
			leaves = append(leaves, i)
		}
	}
	return leaves
}
