package surface_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokifmm/kifmm/kernel"
	"github.com/gokifmm/kifmm/linalg"
	"github.com/gokifmm/kifmm/surface"
)

func TestPointCountFormulas(t *testing.T) {
	s3, err := surface.PointCount(6, 3)
	require.NoError(t, err)
	assert.Equal(t, 6*6*6-12*6+8, s3)

	s2, err := surface.PointCount(6, 2)
	require.NoError(t, err)
	assert.Equal(t, 4*6-4, s2)

	_, err = surface.PointCount(1, 3)
	assert.ErrorIs(t, err, surface.ErrInvalidOrder)

	_, err = surface.PointCount(6, 4)
	assert.ErrorIs(t, err, surface.ErrUnsupportedDim)
}

func TestMakeSurfacePointsLieOnUnitSphere(t *testing.T) {
	pts, err := surface.MakeSurface(8, 3)
	require.NoError(t, err)
	s, _ := surface.PointCount(8, 3)
	require.Len(t, pts, s)
	for _, p := range pts {
		r := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		assert.InDelta(t, 1.0, r, 1e-9)
	}
}

func TestMakeSurfacePointsLieOnUnitCircle(t *testing.T) {
	pts, err := surface.MakeSurface(8, 2)
	require.NoError(t, err)
	for _, p := range pts {
		r := math.Sqrt(p[0]*p[0] + p[1]*p[1])
		assert.InDelta(t, 1.0, r, 1e-9)
	}
}

func TestPlaceScalesAndTranslates(t *testing.T) {
	canonical, err := surface.MakeSurface(6, 3)
	require.NoError(t, err)
	center := []float64{1, 2, 3}
	placed := surface.Place(canonical, center, 2.5)
	require.Len(t, placed, len(canonical))
	for i, p := range placed {
		for d := 0; d < 3; d++ {
			assert.InDelta(t, center[d]+2.5*canonical[i][d], p[d], 1e-12)
		}
	}
}

func TestSolveC2ERoundTripsSyntheticDensity(t *testing.T) {
	k := kernel.NewLaplace()
	canonical, err := surface.MakeSurface(6, 3)
	require.NoError(t, err)
	normals := surface.OutwardNormals(canonical)

	equiv := surface.Place(canonical, []float64{0, 0, 0}, 1.1)
	check := surface.Place(canonical, []float64{0, 0, 0}, 2.9)

	p, err := surface.SolveC2E(k, equiv, normals, check, normals, 1e-12)
	require.NoError(t, err)
	assert.Equal(t, len(equiv), p.Rows())
	assert.Equal(t, len(check), p.Cols())

	// A uniform unit density on the equivalent surface produces a check
	// potential; applying P should recover *some* equivalent density that
	// reproduces a finite, non-degenerate result (sanity, not exactness --
	// the pseudoinverse is a least-squares solve, not an exact inverse,
	// when the forward map is rank-deficient).
	m := make([]float64, len(equiv))
	for i := range m {
		m[i] = 1.0
	}
	a, err := linalg.NewDense(len(check), len(equiv))
	require.NoError(t, err)
	require.NoError(t, k.Evaluate(check, normals, equiv, normals, a.Raw()))
	c, err := linalg.MatVec(a, m)
	require.NoError(t, err)

	recovered, err := linalg.MatVec(p, c)
	require.NoError(t, err)
	require.Len(t, recovered, len(equiv))
	for _, v := range recovered {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}
