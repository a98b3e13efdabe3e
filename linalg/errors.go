package linalg

import "errors"

// Sentinel errors for the linalg package. Callers branch with errors.Is;
// messages are never reworded at the call site, only wrapped with %w.
var (
	// ErrInvalidDimensions indicates a requested matrix shape has a
	// non-positive row or column count.
	ErrInvalidDimensions = errors.New("linalg: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates a row or column index outside [0, dim).
	ErrIndexOutOfBounds = errors.New("linalg: index out of bounds")

	// ErrNilMatrix indicates a nil *Dense receiver or argument.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNonSquare indicates a square matrix was required but not supplied.
	ErrNonSquare = errors.New("linalg: matrix is not square")

	// ErrNotSymmetric indicates a symmetric matrix was required but the
	// input violated symmetry beyond the configured tolerance.
	ErrNotSymmetric = errors.New("linalg: matrix is not symmetric within tolerance")

	// ErrEigenFailed indicates the Jacobi eigensolver did not converge
	// within the configured iteration budget.
	ErrEigenFailed = errors.New("linalg: eigen decomposition failed to converge")

	// ErrSingular indicates a pseudoinverse was requested of a matrix
	// whose largest singular value is zero (all-degenerate input).
	ErrSingular = errors.New("linalg: matrix has no non-zero singular values")
)

func wrapf(op string, err error) error {
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }
