package linalg

import "math"

// Eigen computes the eigenvalues and eigenvectors of a symmetric Dense
// matrix m via the classical Jacobi rotation method: repeatedly zero the
// largest off-diagonal entry until every off-diagonal magnitude drops below
// tol, or maxIter rotations are exhausted.
//
// Contract: m must be square and symmetric within tol.
// Determinism: pivot search and rotation application use a fixed i->j loop
// order, so repeated calls on identical input converge to bitwise-identical
// output.
// Complexity: Time O(maxIter*n^2), Space O(n^2).
func Eigen(m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := validateSymmetric(m, tol); err != nil {
		return nil, nil, wrapf("Eigen", err)
	}
	n := m.r
	a := m.Clone()
	q, _ := Identity(n)

	for iter := 0; iter < maxIter; iter++ {
		// Find the largest off-diagonal magnitude and its location (p, q).
		maxOff := 0.0
		p, piv := 0, 0
		for i := 0; i < n; i++ {
			base := i * n
			for j := i + 1; j < n; j++ {
				off := math.Abs(a.data[base+j])
				if off > maxOff {
					maxOff, p, piv = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app := a.data[p*n+p]
		aqq := a.data[piv*n+piv]
		apq := a.data[p*n+piv]

		theta := (aqq - app) / (2 * apq)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		for i := 0; i < n; i++ {
			if i == p || i == piv {
				continue
			}
			aip := a.data[i*n+p]
			aiq := a.data[i*n+piv]
			newIP := c*aip - s*aiq
			newIQ := s*aip + c*aiq
			a.data[i*n+p], a.data[p*n+i] = newIP, newIP
			a.data[i*n+piv], a.data[piv*n+i] = newIQ, newIQ
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[piv*n+piv] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+piv], a.data[piv*n+p] = 0, 0

		for i := 0; i < n; i++ {
			qip := q.data[i*n+p]
			qiq := q.data[i*n+piv]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+piv] = s*qip + c*qiq
		}
	}

	maxOff := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if off := math.Abs(a.data[i*n+j]); off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, wrapf("Eigen", ErrEigenFailed)
	}

	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}
	return eigs, q, nil
}
