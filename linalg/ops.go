// Package linalg: element-wise and matrix-level kernels. All functions
// perform strict fail-fast validation and return a wrapped sentinel on
// dimension mismatch; none of them panic on caller-supplied data.
package linalg

const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
)

// Add returns a new Dense containing the element-wise sum of a and b.
// Complexity: O(r*c) time, O(r*c) space.
func Add(a, b *Dense) (*Dense, error) {
	if err := validateSameShape(a, b); err != nil {
		return nil, wrapf(opAdd, err)
	}
	res, _ := NewDense(a.r, a.c)
	for idx := range res.data {
		res.data[idx] = a.data[idx] + b.data[idx]
	}
	return res, nil
}

// Sub returns a new Dense containing the element-wise difference a - b.
// Complexity: O(r*c) time, O(r*c) space.
func Sub(a, b *Dense) (*Dense, error) {
	if err := validateSameShape(a, b); err != nil {
		return nil, wrapf(opSub, err)
	}
	res, _ := NewDense(a.r, a.c)
	for idx := range res.data {
		res.data[idx] = a.data[idx] - b.data[idx]
	}
	return res, nil
}

// Scale returns alpha*m as a new Dense. Complexity: O(r*c).
func Scale(m *Dense, alpha float64) (*Dense, error) {
	if err := validateNotNil(m); err != nil {
		return nil, wrapf(opScale, err)
	}
	res, _ := NewDense(m.r, m.c)
	for idx := range res.data {
		res.data[idx] = alpha * m.data[idx]
	}
	return res, nil
}

// Transpose returns the transpose of m as a new Dense. Complexity: O(r*c).
func Transpose(m *Dense) (*Dense, error) {
	if err := validateNotNil(m); err != nil {
		return nil, wrapf(opTranspose, err)
	}
	res, _ := NewDense(m.c, m.r)
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[base+j]
		}
	}
	return res, nil
}

// Mul performs standard matrix multiplication c = a * b.
// Fixed i->k->j loop order with row-major strides for determinism.
// Complexity: Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := validateNotNil(a); err != nil {
		return nil, wrapf(opMul, err)
	}
	if err := validateNotNil(b); err != nil {
		return nil, wrapf(opMul, err)
	}
	if a.c != b.r {
		return nil, wrapf(opMul, ErrDimensionMismatch)
	}
	res, _ := NewDense(a.r, b.c)
	for i := 0; i < a.r; i++ {
		aBase := i * a.c
		resBase := i * res.c
		for k := 0; k < a.c; k++ {
			av := a.data[aBase+k]
			if av == 0 {
				continue
			}
			bBase := k * b.c
			for j := 0; j < b.c; j++ {
				res.data[resBase+j] += av * b.data[bBase+j]
			}
		}
	}
	return res, nil
}

// MatVec computes y = m * x for a dense matrix m and vector x.
// Complexity: O(r*c) time, O(r) space.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if err := validateNotNil(m); err != nil {
		return nil, wrapf(opMatVec, err)
	}
	if len(x) != m.c {
		return nil, wrapf(opMatVec, ErrDimensionMismatch)
	}
	y := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		base := i * m.c
		var sum float64
		for j := 0; j < m.c; j++ {
			sum += m.data[base+j] * x[j]
		}
		y[i] = sum
	}
	return y, nil
}
