package pointcloud_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokifmm/kifmm/pointcloud"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := pointcloud.New([][]float64{{0, 0}}, [][]float64{{1, 0}, {0, 1}})
	assert.ErrorIs(t, err, pointcloud.ErrShapeMismatch)

	c, err := pointcloud.New([][]float64{{0, 0}, {1, 1}}, [][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, c.OrigIdx)
}

func TestPermuteIsBijectionPreserving(t *testing.T) {
	c, err := pointcloud.New(
		[][]float64{{0, 0}, {1, 1}, {2, 2}},
		[][]float64{{1, 0}, {1, 0}, {1, 0}},
	)
	require.NoError(t, err)

	c.Permute([]int{2, 0, 1})
	assert.Equal(t, [][]float64{{2, 2}, {0, 0}, {1, 1}}, c.Points)
	assert.Equal(t, []int{2, 0, 1}, c.OrigIdx)

	seen := make(map[int]bool)
	for _, idx := range c.OrigIdx {
		assert.False(t, seen[idx])
		seen[idx] = true
	}
	assert.Len(t, seen, 3)
}

func TestPermuteValuesRoundTrip(t *testing.T) {
	origIdx := []int{2, 0, 1}
	reordered := []float64{20, 21, 0, 1, 10, 11} // stride 2, in tree order
	original, err := pointcloud.PermuteValues(reordered, origIdx, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 10, 11, 20, 21}, original)

	back, err := pointcloud.PermuteValues(original, origIdx, 2, false)
	require.NoError(t, err)
	assert.Equal(t, reordered, back)
}
