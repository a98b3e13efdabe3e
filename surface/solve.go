package surface

import (
	"github.com/gokifmm/kifmm/kernel"
	"github.com/gokifmm/kifmm/linalg"
)

// SolveC2E builds the check-to-equivalent pseudoinverse P for a node: given
// a kernel K, an equivalent-surface point set (with outward normals) and a
// check-surface point set (with outward normals), P maps a check-potential
// vector c (length len(checkSurf)*K.TensorDim()) to the equivalent density m
// = P*c that reproduces it, in the least-squares/SVD-regularized sense.
//
// The forward map is A = K(check <- equiv), an (len(checkSurf)*T) x
// (len(equivSurf)*T) dense matrix; P = pinv(A, svdThreshold). Singular
// values of A below svdThreshold*sigmaMax are treated as zero.
func SolveC2E(k kernel.Kernel, equivSurf, equivNormals, checkSurf, checkNormals [][]float64, svdThreshold float64) (*linalg.Dense, error) {
	t := k.TensorDim()
	nEquiv, nCheck := len(equivSurf), len(checkSurf)

	a, err := linalg.NewDense(nCheck*t, nEquiv*t)
	if err != nil {
		return nil, err
	}
	if err := k.Evaluate(checkSurf, checkNormals, equivSurf, equivNormals, a.Raw()); err != nil {
		return nil, err
	}

	return linalg.PseudoInverse(a, svdThreshold)
}
