package spatialtree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokifmm/kifmm/spatialtree"
)

func randomCloud(n int, seed int64) ([][]float64, [][]float64) {
	rng := rand.New(rand.NewSource(seed))
	points := make([][]float64, n)
	normals := make([][]float64, n)
	for i := range points {
		points[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		normals[i] = []float64{1, 0, 0}
	}
	return points, normals
}

func TestBuildRejectsInvalidInputs(t *testing.T) {
	_, err := spatialtree.Build([][]float64{{0, 0, 0}}, [][]float64{{1, 0, 0}}, 0)
	assert.ErrorIs(t, err, spatialtree.ErrInvalidLeafCapacity)

	_, err = spatialtree.Build(nil, nil, 1)
	assert.ErrorIs(t, err, spatialtree.ErrEmptyPoints)
}

func TestBuildPartitionInvariant(t *testing.T) {
	points, normals := randomCloud(10000, 42)
	tr, err := spatialtree.Build(points, normals, 50)
	require.NoError(t, err)

	for _, n := range tr.Nodes {
		if n.IsLeaf {
			continue
		}
		covered := 0
		prevEnd := n.Start
		// Children ranges must tile [n.Start, n.End) with no gaps/overlaps
		// once sorted by Start; Build emits them left-to-right already.
		for _, ci := range n.Children {
			c := tr.Nodes[ci]
			assert.Equal(t, prevEnd, c.Start, "gap or overlap before child %d", ci)
			prevEnd = c.End
			covered += c.End - c.Start
		}
		assert.Equal(t, n.End, prevEnd)
		assert.Equal(t, n.End-n.Start, covered)
	}
}

func TestBuildContainmentInvariant(t *testing.T) {
	points, normals := randomCloud(5000, 7)
	tr, err := spatialtree.Build(points, normals, 32)
	require.NoError(t, err)

	for _, n := range tr.Nodes {
		for i := n.Start; i < n.End; i++ {
			assert.True(t, n.Bounds.Contains(tr.Cloud.Points[i], 1e-9),
				"node %d does not contain its own point at %d", n.Idx, i)
		}
	}
}

func TestBuildOrigIdxIsBijection(t *testing.T) {
	points, normals := randomCloud(1000, 99)
	tr, err := spatialtree.Build(points, normals, 10)
	require.NoError(t, err)

	seen := make([]bool, len(points))
	for _, idx := range tr.Cloud.OrigIdx {
		require.False(t, seen[idx])
		seen[idx] = true
	}
	for _, ok := range seen {
		assert.True(t, ok)
	}
}

func TestBuildLeafCapacityHonored(t *testing.T) {
	points, normals := randomCloud(2000, 3)
	tr, err := spatialtree.Build(points, normals, 16)
	require.NoError(t, err)

	for _, n := range tr.Nodes {
		if n.IsLeaf {
			assert.LessOrEqual(t, n.End-n.Start, 16)
		} else {
			assert.Greater(t, n.End-n.Start, 16)
		}
	}
}

func TestBuildDegenerateCoincidentPoints(t *testing.T) {
	points := make([][]float64, 100)
	normals := make([][]float64, 100)
	for i := range points {
		points[i] = []float64{1, 1, 1}
		normals[i] = []float64{0, 1, 0}
	}
	tr, err := spatialtree.Build(points, normals, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, len(tr.Nodes))
	assert.True(t, tr.Nodes[0].IsLeaf)
}

func TestHeightsAreConsistent(t *testing.T) {
	points, normals := randomCloud(3000, 55)
	tr, err := spatialtree.Build(points, normals, 20)
	require.NoError(t, err)

	for _, n := range tr.Nodes {
		if n.IsLeaf {
			assert.Equal(t, 0, n.Height)
			continue
		}
		want := 0
		for _, ci := range n.Children {
			if h := tr.Nodes[ci].Height; h+1 > want {
				want = h + 1
			}
		}
		assert.Equal(t, want, n.Height)
	}
}
