package linalg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokifmm/kifmm/linalg"
)

func TestDenseAtSetBounds(t *testing.T) {
	m, err := linalg.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 5.0))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, linalg.ErrIndexOutOfBounds)
}

func TestAddSubScaleTranspose(t *testing.T) {
	a, _ := linalg.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := linalg.NewDenseFromRows([][]float64{{5, 6}, {7, 8}})

	sum, err := linalg.Add(a, b)
	require.NoError(t, err)
	v, _ := sum.At(1, 1)
	assert.Equal(t, 12.0, v)

	diff, err := linalg.Sub(b, a)
	require.NoError(t, err)
	v, _ = diff.At(0, 0)
	assert.Equal(t, 4.0, v)

	scaled, err := linalg.Scale(a, 2.0)
	require.NoError(t, err)
	v, _ = scaled.At(1, 0)
	assert.Equal(t, 6.0, v)

	tr, err := linalg.Transpose(a)
	require.NoError(t, err)
	v, _ = tr.At(0, 1)
	assert.Equal(t, 3.0, v)
}

func TestMulAndMatVec(t *testing.T) {
	a, _ := linalg.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := linalg.NewDenseFromRows([][]float64{{5, 6}, {7, 8}})

	c, err := linalg.Mul(a, b)
	require.NoError(t, err)
	v, _ := c.At(0, 0)
	assert.Equal(t, 19.0, v)
	v, _ = c.At(1, 1)
	assert.Equal(t, 50.0, v)

	y, err := linalg.MatVec(a, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, y)

	bad, err := linalg.NewDense(3, 2)
	require.NoError(t, err)
	_, err = linalg.Mul(a, bad)
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestEigenSymmetric(t *testing.T) {
	m, _ := linalg.NewDenseFromRows([][]float64{{2, 1}, {1, 2}})
	eigs, _, err := linalg.Eigen(m, 1e-12, 100)
	require.NoError(t, err)
	assert.Len(t, eigs, 2)

	sum := eigs[0] + eigs[1]
	assert.InDelta(t, 4.0, sum, 1e-9) // trace is invariant

	nonSquare, err := linalg.NewDense(2, 3)
	require.NoError(t, err)
	_, _, err = linalg.Eigen(nonSquare, 1e-12, 10)
	assert.ErrorIs(t, err, linalg.ErrNonSquare)
}

func TestPseudoInverseOfWellConditionedMatrixMatchesInverse(t *testing.T) {
	m, _ := linalg.NewDenseFromRows([][]float64{{4, 0}, {0, 9}})
	pinv, err := linalg.PseudoInverse(m, 1e-15)
	require.NoError(t, err)

	v, _ := pinv.At(0, 0)
	assert.InDelta(t, 0.25, v, 1e-9)
	v, _ = pinv.At(1, 1)
	assert.InDelta(t, 1.0/9.0, v, 1e-9)
}

func TestPseudoInverseTruncatesSmallSingularValues(t *testing.T) {
	// Rank-deficient: second singular value is exactly 0.
	m, _ := linalg.NewDenseFromRows([][]float64{{1, 0}, {0, 0}})
	pinv, err := linalg.PseudoInverse(m, 1e-15)
	require.NoError(t, err)

	v, _ := pinv.At(0, 0)
	assert.InDelta(t, 1.0, v, 1e-9)
	v, _ = pinv.At(1, 1)
	assert.True(t, math.Abs(v) < 1e-9)
}
