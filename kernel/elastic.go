package kernel

import "math"

// Elastic is the Kelvin fundamental solution for displacement in an
// isotropic, homogeneous, infinite elastic solid (T=3): the displacement
// at x in direction a due to a unit point force at y in direction b.
// Used by the engine's own tensor-kernel tests.
//
//	U_ab(x,y) = 1/(16*pi*mu*(1-nu)) * [ (3-4*nu)*delta_ab/r + r_a*r_b/r^3 ]
//
// where r = x - y, r = |r|, mu is the shear modulus and nu the Poisson
// ratio (params = [mu, nu]).
type Elastic struct {
	mu, nu float64
}

// defaultMu and defaultNu give a generic, stable isotropic solid when no
// params are supplied.
const (
	defaultMu = 1.0
	defaultNu = 0.3
)

// NewElastic returns the elastic displacement kernel with shear modulus mu
// and Poisson ratio nu.
func NewElastic(mu, nu float64) *Elastic { return &Elastic{mu: mu, nu: nu} }

func newElasticFromParams(params []float64) Kernel {
	mu, nu := defaultMu, defaultNu
	if len(params) > 0 {
		mu = params[0]
	}
	if len(params) > 1 {
		nu = params[1]
	}
	return NewElastic(mu, nu)
}

func (k *Elastic) Name() string      { return "elastic" }
func (k *Elastic) TensorDim() int    { return 3 }
func (k *Elastic) Params() []float64 { return []float64{k.mu, k.nu} }

// Evaluate fills the flattened (nObs, 3, nSrc, 3) tensor per the Kernel
// contract. Coincident obs/src points produce a zero 3x3 block: the Kelvin
// solution is singular at r=0 and, as with Laplace, the self-contribution
// is defined as 0.
func (k *Elastic) Evaluate(obsPts, obsNormals, srcPts, srcNormals [][]float64, out []float64) error {
	const T = 3
	nObs, nSrc := len(obsPts), len(srcPts)
	if len(out) != nObs*nSrc*T*T {
		return ErrKernelError
	}
	coef := 1.0 / (16 * math.Pi * k.mu * (1 - k.nu))
	threeMinus4nu := 3 - 4*k.nu

	for i := 0; i < nObs; i++ {
		o := obsPts[i]
		for j := 0; j < nSrc; j++ {
			s := srcPts[j]
			var r [3]float64
			var r2 float64
			for d := 0; d < T; d++ {
				r[d] = o[d] - s[d]
				r2 += r[d] * r[d]
			}
			rNorm := math.Sqrt(r2)
			blockBase := (i*T)*nSrc*T + j*T // offset of (a=0,b=0) within row-major (nObs,T,nSrc,T)
			if rNorm == 0 {
				for a := 0; a < T; a++ {
					rowBase := blockBase + a*nSrc*T
					for b := 0; b < T; b++ {
						out[rowBase+b] = 0
					}
				}
				continue
			}
			invR := 1.0 / rNorm
			invR3 := invR * invR * invR
			for a := 0; a < T; a++ {
				rowBase := blockBase + a*nSrc*T
				for b := 0; b < T; b++ {
					delta := 0.0
					if a == b {
						delta = 1.0
					}
					val := coef * (threeMinus4nu*delta*invR + r[a]*r[b]*invR3)
					out[rowBase+b] = val
				}
			}
		}
	}
	return nil
}
