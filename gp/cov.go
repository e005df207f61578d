package gp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/edmetrics/bayesmodels/kernel"
)

// Jitter is added to every diagonal entry of a kernel matrix so that
// factorization survives the numerical underflow of nearly-identical input
// locations.
const Jitter = 1e-9

const (
	badInOut   = "gp: inequal number of input and output samples"
	badLength  = "gp: parameter length mismatch"
	badStorage = "gp: bad storage length"
)

// ErrNotPositiveDefinite is returned when a kernel matrix cannot be Cholesky
// factorized even after jitter has been added to its diagonal.
var ErrNotPositiveDefinite = errors.New("gp: kernel matrix not positive definite")

// covMatrix fills k with the kernel covariance over the locations x, adding
// Jitter plus extraDiag to the diagonal. If k is nil new storage is
// allocated.
func covMatrix(k *mat.SymDense, ker kernel.Kernel, x []float64, extraDiag float64) *mat.SymDense {
	n := len(x)
	if k == nil {
		k = mat.NewSymDense(n, nil)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := ker.Cov(x[i], x[j])
			if i == j {
				v += Jitter + extraDiag
			}
			k.SetSym(i, j, v)
		}
	}
	return k
}

// covMatrixDHyper fills k like covMatrix and additionally fills dK[h] with
// the elementwise derivative of the kernel matrix with respect to the h'th
// kernel hyperparameter. The diagonal additions are constants and do not
// contribute to the derivatives.
func covMatrixDHyper(k *mat.SymDense, dK []*mat.Dense, ker kernel.Kernel, x []float64, extraDiag float64) {
	n := len(x)
	if len(dK) != ker.NumHyper() {
		panic(badStorage)
	}
	deriv := make([]float64, ker.NumHyper())
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := ker.CovDHyper(x[i], x[j], deriv)
			if i == j {
				v += Jitter + extraDiag
			}
			k.SetSym(i, j, v)
			for h, d := range deriv {
				dK[h].Set(i, j, d)
				dK[h].Set(j, i, d)
			}
		}
	}
}

// hyperGrad computes the derivative of the log density with respect to one
// kernel hyperparameter, differentiated through the Cholesky factor. With
// S = L^-1 * dK * L^-T the factor derivative is dL = L*Phi(S), where Phi
// zeroes the strict upper triangle and halves the diagonal, so the chain rule
// gives u^T * Phi(S) * eta with u = L^T * dlogp/df.
func hyperGrad(l *mat.TriDense, dK mat.Matrix, u, eta []float64) float64 {
	n := len(u)
	var a, s mat.Dense
	// L comes from a successful factorization, so the solves cannot fail.
	_ = l.SolveTo(&a, false, dK)
	_ = l.SolveTo(&s, false, a.T())
	var g float64
	for i := 0; i < n; i++ {
		g += 0.5 * s.At(i, i) * u[i] * eta[i]
		for j := 0; j < i; j++ {
			g += s.At(i, j) * u[i] * eta[j]
		}
	}
	return g
}

// finitePositive reports whether a log-parameterized positive quantity came
// through the exp transform without overflow or underflow.
func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func zeroFloats(x []float64) {
	for i := range x {
		x[i] = 0
	}
}

// rejected zeroes grad (when present) and returns -Inf, the invalid-proposal
// signal handed back to the driving sampler in place of NaN propagation.
func rejected(grad []float64) float64 {
	if grad != nil {
		zeroFloats(grad)
	}
	return math.Inf(-1)
}
