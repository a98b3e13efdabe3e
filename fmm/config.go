package fmm

import "github.com/gokifmm/kifmm/kernel"

// Config is the fixed set of parameters governing one FMM build/evaluate
// lifecycle. It is an exported flat
// struct rather than only an opaque option-built value, since every field
// is independently meaningful and callers who already know every value up
// front (the common case: a boundary-element solver calling build_fmm once
// per geometry) should be able to construct one directly.
type Config struct {
	InnerR       float64 // equivalent radius factor, typically ~1.1
	OuterR       float64 // check radius factor, typically ~2.9-3.0
	Order        int     // translation surface order, >= 2
	KernelName   string
	Params       []float64
	MAC          float64 // multipole acceptance criterion threshold, in (0, 1/(OuterR-1))
	LeafCapacity int
	SVDThreshold float64 // relative SVD truncation threshold, default 1e-15
}

// DefaultConfig returns a Config with typical values: InnerR 1.1, OuterR
// 2.9, Order 6, kernel "laplace", MAC 0.3, LeafCapacity 50,
// SVDThreshold 1e-15.
func DefaultConfig() Config {
	return Config{
		InnerR:       1.1,
		OuterR:       2.9,
		Order:        6,
		KernelName:   "laplace",
		MAC:          0.3,
		LeafCapacity: 50,
		SVDThreshold: 1e-15,
	}
}

// Option mutates a Config built from DefaultConfig(). Options never panic
// and never validate individually -- validation happens once, in full, at
// Build.
type Option func(*Config)

// WithRadii sets the equivalent/check radius factors (inner < outer).
func WithRadii(innerR, outerR float64) Option {
	return func(c *Config) { c.InnerR, c.OuterR = innerR, outerR }
}

// WithOrder sets the translation surface order.
func WithOrder(order int) Option {
	return func(c *Config) { c.Order = order }
}

// WithKernel sets the kernel name and its scalar parameter vector.
func WithKernel(name string, params []float64) Option {
	return func(c *Config) { c.KernelName = name; c.Params = params }
}

// WithMAC sets the multipole acceptance criterion threshold.
func WithMAC(mac float64) Option {
	return func(c *Config) { c.MAC = mac }
}

// WithLeafCapacity sets the maximum number of points a tree leaf may hold.
func WithLeafCapacity(n int) Option {
	return func(c *Config) { c.LeafCapacity = n }
}

// WithSVDThreshold sets the relative singular-value truncation threshold
// used by every check-to-equivalent solve.
func WithSVDThreshold(t float64) Option {
	return func(c *Config) { c.SVDThreshold = t }
}

// NewConfig applies opts over DefaultConfig() and returns the result.
// Unvalidated: Build performs the single, full validation pass.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// validate checks every InvalidConfig condition in one pass.
func (c Config) validate() error {
	if c.OuterR <= c.InnerR {
		return ErrInvalidConfig
	}
	if c.Order < 2 {
		return ErrInvalidConfig
	}
	if c.LeafCapacity < 1 {
		return ErrInvalidConfig
	}
	if !kernel.Registered(c.KernelName) {
		return ErrInvalidConfig
	}
	macCeiling := 1 / (c.OuterR - 1)
	if c.MAC <= 0 || c.MAC >= macCeiling {
		return ErrInvalidConfig
	}
	return nil
}
