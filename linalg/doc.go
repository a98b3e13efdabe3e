// Package linalg provides the dense linear-algebra primitives the rest of
// kifmm builds on: a row-major Dense matrix, the handful of kernels the
// translation-operator machinery needs (Add, Scale, Transpose, MatVec, Mul),
// a symmetric Jacobi eigensolver, and an SVD-truncated pseudoinverse used by
// the check-to-equivalent solver.
//
// What & Why:
//
//	The check-to-equivalent solve (surface.SolveC2E) must invert dense,
//	often ill-conditioned S×S matrices (condition numbers 1e6-1e12 are
//	routine for KIFMM surfaces). Pseudoinverse delegates the actual SVD to
//	gonum.org/v1/gonum/mat, which is numerically robust for this regime;
//	Dense stays a thin, allocation-friendly row-major type so the rest of
//	the package never pays for gonum's richer matrix abstraction unless it
//	asks for a pseudoinverse.
//
// Determinism:
//
//	All kernels use a fixed loop order (flat 0..n-1 on the backing slice);
//	results are bitwise-reproducible across runs for the same inputs.
package linalg
