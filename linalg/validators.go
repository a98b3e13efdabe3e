package linalg

import "math"

// validateNotNil ensures m is non-nil.
func validateNotNil(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	return nil
}

// validateSameShape checks a and b share identical dimensions.
func validateSameShape(a, b *Dense) error {
	if err := validateNotNil(a); err != nil {
		return err
	}
	if err := validateNotNil(b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return ErrDimensionMismatch
	}
	return nil
}

// validateSquare checks m is square.
func validateSquare(m *Dense) error {
	if err := validateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return ErrNonSquare
	}
	return nil
}

// validateSymmetric checks m is square and symmetric within tol (absolute,
// elementwise: |m[i,j]-m[j,i]| <= tol).
func validateSymmetric(m *Dense, tol float64) error {
	if err := validateSquare(m); err != nil {
		return err
	}
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > tol {
				return ErrNotSymmetric
			}
		}
	}
	return nil
}
