package fmm

import "errors"

// ErrInvalidConfig reports a Config that fails validation at Build time:
// mac >= 1/(outer_r-1), outer_r <= inner_r, an unregistered kernel name,
// order < 2, or leaf_capacity < 1.
var ErrInvalidConfig = errors.New("fmm: invalid configuration")

// ErrShapeMismatch reports a density vector whose length does not match
// M*T, or observation and source trees of different dimension.
var ErrShapeMismatch = errors.New("fmm: shape mismatch")

// ErrNumericallySingular reports a check-to-equivalent pseudoinverse whose
// largest singular value is zero -- every point in the surface degenerate
//. Raised at Build.
var ErrNumericallySingular = errors.New("fmm: numerically singular operator")

// ErrKernelError wraps a failure propagated from the configured kernel's
// Evaluate callback. Fatal to the in-flight Build or Evaluate call; engine
// state is left unchanged.
var ErrKernelError = errors.New("fmm: kernel evaluation failed")
