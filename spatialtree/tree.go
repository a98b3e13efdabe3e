package spatialtree

import (
	"github.com/gokifmm/kifmm/ball"
	"github.com/gokifmm/kifmm/pointcloud"
)

// Node is one entry of the flat, arena-style node array. Children are
// stored as index lists into the same array, never as owning references, so the tree has
// no cycles and no per-node heap object beyond the Node value itself.
type Node struct {
	Idx      int
	Start    int // range start, inclusive, into Tree.Cloud.Points
	End      int // range end, exclusive
	Depth    int
	Height   int
	IsLeaf   bool
	Bounds   ball.Ball
	Children []int
}

// Tree is the flat node array plus the (possibly reordered) point cloud it
// indexes. Build is deterministic given identical inputs.
type Tree struct {
	Nodes []Node
	Cloud *pointcloud.Cloud
}

// Root returns the root node (always index 0 for a non-empty tree).
func (t *Tree) Root() *Node { return &t.Nodes[0] }

// Build partitions points (with parallel normals) into a flat octree/KD-tree
// node array, reordering points/normals in place so each node owns a
// contiguous [Start, End) range. leafCapacity is the maximum number of
// points a leaf may hold.
//
// Algorithm: recursive partition from the root ball (Ritter
// bounding ball of all points); at each internal node, split around the
// centroid of the node's actual points (not the ball center) along every
// axis at once, producing up to 2^d children (d=2: quadtree, d=3: octree);
// empty children are omitted; recurse until a node holds leafCapacity
// points or fewer. Degenerate (all-coincident) inputs collapse to a single
// leaf regardless of leafCapacity: when every point of a node falls in the
// same octant, the node is made a leaf instead of being split.
//
// Complexity: O(n*d*log n) expected time (balanced case), O(n) space for
// the node array plus O(range) transient scratch per recursive call.
func Build(points, normals [][]float64, leafCapacity int) (*Tree, error) {
	if leafCapacity < 1 {
		return nil, ErrInvalidLeafCapacity
	}
	if len(points) == 0 {
		return nil, ErrEmptyPoints
	}
	cloud, err := pointcloud.New(points, normals)
	if err != nil {
		return nil, err
	}

	t := &Tree{Cloud: cloud}
	t.buildNode(leafCapacity, 0, len(points), 0)
	t.computeHeights()
	return t, nil
}

// buildNode partitions the range [start, end) of t.Cloud, appends the
// resulting node to t.Nodes, and returns its index. Preorder: a node's
// index is always assigned before (and so is numerically less than) the
// index of any node in its subtree.
func (t *Tree) buildNode(leafCapacity, start, end, depth int) int {
	points := t.Cloud.Points[start:end]
	bounds := ball.BoundingBall(points)

	nodeIdx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		Idx:    nodeIdx,
		Start:  start,
		End:    end,
		Depth:  depth,
		Bounds: bounds,
	})

	if end-start <= leafCapacity {
		t.Nodes[nodeIdx].IsLeaf = true
		return nodeIdx
	}

	centroid := ball.Centroid(points)
	dim := len(centroid)

	// Bucket each point's absolute index by its octant key: bit `axis` is
	// set iff the point is on the >= side of the centroid along that axis.
	buckets := make(map[int][]int)
	keyOrder := make([]int, 0, 1<<dim)
	for i, p := range points {
		key := 0
		for axis := 0; axis < dim; axis++ {
			if p[axis] >= centroid[axis] {
				key |= 1 << axis
			}
		}
		if _, seen := buckets[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		buckets[key] = append(buckets[key], start+i)
	}

	if len(buckets) == 1 {
		// Every point fell in the same octant as the centroid (can happen
		// for near-coincident clusters); subdividing further would not
		// change the partition, so terminate as a leaf rather than
		// recursing forever.
		t.Nodes[nodeIdx].IsLeaf = true
		return nodeIdx
	}

	// Deterministic child order: ascending octant key, regardless of
	// bucket discovery order.
	sortInts(keyOrder)

	order := make([]int, 0, end-start)
	type childRange struct{ start, end int }
	var ranges []childRange
	cursor := start
	for _, key := range keyOrder {
		members := buckets[key]
		order = append(order, members...)
		ranges = append(ranges, childRange{start: cursor, end: cursor + len(members)})
		cursor += len(members)
	}
	applyRangePermutation(t.Cloud, start, end, order)

	children := make([]int, 0, len(ranges))
	for _, r := range ranges {
		children = append(children, t.buildNode(leafCapacity, r.start, r.end, depth+1))
	}
	t.Nodes[nodeIdx].Children = children
	return nodeIdx
}

// applyRangePermutation rewrites t.Cloud's [start,end) range so that
// position start+i holds whatever previously lived at order[i] (order[i]
// is an absolute index within [start,end)).
func applyRangePermutation(cloud *pointcloud.Cloud, start, end int, order []int) {
	n := end - start
	tmpP := make([][]float64, n)
	tmpN := make([][]float64, n)
	tmpO := make([]int, n)
	for i, srcAbs := range order {
		tmpP[i] = cloud.Points[srcAbs]
		tmpN[i] = cloud.Normals[srcAbs]
		tmpO[i] = cloud.OrigIdx[srcAbs]
	}
	copy(cloud.Points[start:end], tmpP)
	copy(cloud.Normals[start:end], tmpN)
	copy(cloud.OrigIdx[start:end], tmpO)
}

// computeHeights fills Height bottom-up. Because Build assigns indices in
// preorder, every node's index is smaller than every index in its subtree,
// so a single descending pass over Nodes guarantees each node's children
// are already finalized when the node itself is visited.
func (t *Tree) computeHeights() {
	for i := len(t.Nodes) - 1; i >= 0; i-- {
		n := &t.Nodes[i]
		if n.IsLeaf {
			n.Height = 0
			continue
		}
		maxChildHeight := 0
		for _, c := range n.Children {
			if h := t.Nodes[c].Height; h > maxChildHeight {
				maxChildHeight = h
			}
		}
		n.Height = 1 + maxChildHeight
	}
}

// sortInts sorts a small slice of distinct octant keys ascending
// (insertion sort: len(s) <= 2^d <= 8 in the d<=3 domain this package
// targets, so an O(n^2) sort is simpler and at least as fast as pulling in
// sort.Ints for eight-element inputs).
func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
