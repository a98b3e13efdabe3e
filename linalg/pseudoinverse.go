package linalg

import "gonum.org/v1/gonum/mat"

// PseudoInverse computes the Moore-Penrose pseudoinverse of m via truncated
// SVD: m = U*Sigma*V^T, pinv(m) = V*Sigma+*U^T, where Sigma+ zeroes every
// singular value below threshold*sigmaMax before reciprocating. This is the
// numeric core of the check-to-equivalent solve (surface.SolveC2E): KIFMM
// check-to-equivalent matrices routinely carry condition numbers in the
// 1e6-1e12 range, and a plain Inverse (or even a pivoted one) amplifies
// that ill-conditioning into noise. The actual decomposition is delegated to
// gonum.org/v1/gonum/mat, which implements a numerically stable
// Golub-Reinsch SVD; re-deriving that from the package's own Jacobi
// eigensolver would mean re-deriving a worse SVD by hand.
//
// threshold <= 0 is treated as 0 (no truncation beyond machine epsilon
// already applied by gonum's SVD).
// Complexity: Time O(r*c*min(r,c)) for the SVD, plus O(r*c*min(r,c)) to
// assemble the result; Space O(r*c).
func PseudoInverse(m *Dense, threshold float64) (*Dense, error) {
	if err := validateNotNil(m); err != nil {
		return nil, wrapf("PseudoInverse", err)
	}
	if threshold < 0 {
		threshold = 0
	}

	gm := mat.NewDense(m.r, m.c, append([]float64(nil), m.data...))

	var svd mat.SVD
	ok := svd.Factorize(gm, mat.SVDFull)
	if !ok {
		return nil, wrapf("PseudoInverse", ErrSingular)
	}
	sigma := svd.Values(nil)
	if len(sigma) == 0 || sigma[0] == 0 {
		return nil, wrapf("PseudoInverse", ErrSingular)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sigmaMax := sigma[0]
	cutoff := threshold * sigmaMax

	// Build Sigma+ * U^T first: scale each row i of U^T by 1/sigma[i] (or 0
	// if truncated), which is equivalent to scaling column i of U.
	uRows, _ := u.Dims()
	_, vCols := v.Dims()
	k := len(sigma)

	// scaledUT[i][*] = (1/sigma[i]) * U[:,i]^T, truncated entries are zero.
	scaledUT := make([][]float64, k)
	for i := 0; i < k; i++ {
		row := make([]float64, uRows)
		if sigma[i] > cutoff && sigma[i] > 0 {
			inv := 1.0 / sigma[i]
			for r := 0; r < uRows; r++ {
				row[r] = inv * u.At(r, i)
			}
		}
		scaledUT[i] = row
	}

	out, err := NewDense(vCols, uRows)
	if err != nil {
		return nil, wrapf("PseudoInverse", err)
	}
	for i := 0; i < vCols; i++ {
		outBase := i * uRows
		for kk := 0; kk < k; kk++ {
			vik := v.At(i, kk)
			if vik == 0 {
				continue
			}
			row := scaledUT[kk]
			for r := 0; r < uRows; r++ {
				out.data[outBase+r] += vik * row[r]
			}
		}
	}
	return out, nil
}
