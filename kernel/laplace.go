package kernel

import "math"

// Laplace is the scalar 1/r Green's function (T=1) for the 3D Laplace
// equation, used by the engine's own accuracy tests.
// The self-interaction (r=0, an observation point coinciding with a source
// point) is defined as 0.
type Laplace struct{}

// NewLaplace returns the parameterless 1/r kernel.
func NewLaplace() *Laplace { return &Laplace{} }

func (k *Laplace) Name() string       { return "laplace" }
func (k *Laplace) TensorDim() int     { return 1 }
func (k *Laplace) Params() []float64  { return nil }

// Evaluate fills out[i*nSrc+j] = 1/||obsPts[i]-srcPts[j]||, or 0 when the
// points coincide. Normals are accepted for interface uniformity but
// unused by this kernel (1/r has no normal dependence).
func (k *Laplace) Evaluate(obsPts, obsNormals, srcPts, srcNormals [][]float64, out []float64) error {
	nObs, nSrc := len(obsPts), len(srcPts)
	if len(out) != nObs*nSrc {
		return ErrKernelError
	}
	for i := 0; i < nObs; i++ {
		o := obsPts[i]
		base := i * nSrc
		for j := 0; j < nSrc; j++ {
			s := srcPts[j]
			r := euclid(o, s)
			if r == 0 {
				out[base+j] = 0
				continue
			}
			out[base+j] = 1.0 / r
		}
	}
	return nil
}

func euclid(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
