package gp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/edmetrics/bayesmodels/kernel"
	"github.com/edmetrics/bayesmodels/model"
)

// Positions of the hyperparameters in the parameter vector. All three are
// log-transformed so the vector is unconstrained; the standard-normal
// auxiliaries eta follow, one per input location.
const (
	gpLogLength = iota // log length-scale
	gpLogAmp           // log amplitude
	gpLogNoise         // log observation noise standard deviation
	gpNumHyper
)

var _ model.Model = &Fit{}

// Fit is the Gaussian process regression model over observations y at input
// locations x:
//
//	f = L*eta,  y[i] ~ Normal(f[i], sigma)
//
// with priors rho ~ Gamma(4, 4), alpha ~ half-Normal(1),
// sigma ~ half-Normal(1) and eta[i] ~ Normal(0, 1).
type Fit struct {
	core
}

// NewFit returns a regression model for the observations y at the input
// locations x. NewFit panics if the lengths differ.
func NewFit(x, y []float64) (*Fit, error) {
	if len(x) != len(y) {
		panic(badInOut)
	}
	if len(x) == 0 {
		return nil, errors.New("gp: no training data")
	}
	return &Fit{core{x: x, y: y}}, nil
}

// Latent returns the latent function values f = L*eta at the given
// parameters. It returns ErrNotPositiveDefinite if the kernel matrix cannot
// be factorized at these hyperparameters.
func (m *Fit) Latent(params []float64) ([]float64, error) {
	return m.core.latent(params)
}

// core is the joint Gaussian model shared by Fit and Predict. The locations
// x cover both training and query points; the observations y align with the
// leading len(y) locations. For Fit the two lengths coincide.
type core struct {
	x []float64
	y []float64
}

func (c *core) Dim() int {
	return gpNumHyper + len(c.x)
}

// Init returns a starting parameter vector: unit hyperparameters (zero on
// the log scale) and zero auxiliaries.
func (c *core) Init() []float64 {
	return make([]float64, c.Dim())
}

func (c *core) LogDensity(params []float64) float64 {
	return c.eval(params, nil)
}

func (c *core) LogDensityGrad(params, grad []float64) float64 {
	if len(grad) != c.Dim() {
		panic(badLength)
	}
	return c.eval(params, grad)
}

// eval computes the joint log density at params and, when grad is non-nil,
// its gradient. A kernel matrix that loses positive-definiteness yields
// -Inf with a zero gradient.
func (c *core) eval(params, grad []float64) float64 {
	if len(params) != c.Dim() {
		panic(badLength)
	}
	n := len(c.x)
	nObs := len(c.y)
	rho := math.Exp(params[gpLogLength])
	amp := math.Exp(params[gpLogAmp])
	sigma := math.Exp(params[gpLogNoise])
	eta := params[gpNumHyper:]
	if !finitePositive(rho) || !finitePositive(amp) || !finitePositive(sigma) {
		return rejected(grad)
	}

	ker := kernel.SqExp{Amplitude: amp, Length: rho}

	k := mat.NewSymDense(n, nil)
	var dK []*mat.Dense
	if grad == nil {
		covMatrix(k, ker, c.x, 0)
	} else {
		dK = []*mat.Dense{mat.NewDense(n, n, nil), mat.NewDense(n, n, nil)}
		covMatrixDHyper(k, dK, ker, c.x, 0)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		return rejected(grad)
	}
	l := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(l)

	f := mat.NewVecDense(n, nil)
	f.MulVec(l, mat.NewVecDense(n, eta))

	var lp float64
	like := distuv.Normal{Sigma: sigma}
	for i := 0; i < nObs; i++ {
		like.Mu = f.AtVec(i)
		lp += like.LogProb(c.y[i])
	}
	// Priors on the natural scale plus the log-Jacobian of each exp
	// transform.
	lp += lengthPriorLogProb(rho) + params[gpLogLength]
	lp += halfNormalLogProb(scalePriorSigma, amp) + params[gpLogAmp]
	lp += halfNormalLogProb(scalePriorSigma, sigma) + params[gpLogNoise]
	for _, e := range eta {
		lp += distuv.UnitNormal.LogProb(e)
	}
	if grad == nil {
		return lp
	}

	// dlogp/df is nonzero only where there are observations.
	r := make([]float64, n)
	for i := 0; i < nObs; i++ {
		r[i] = (c.y[i] - f.AtVec(i)) / (sigma * sigma)
	}
	u := mat.NewVecDense(n, nil)
	u.MulVec(l.T(), mat.NewVecDense(n, r))
	uData := u.RawVector().Data

	for i := 0; i < n; i++ {
		grad[gpNumHyper+i] = uData[i] - eta[i]
	}

	// kernel.SqExp reports derivatives in (amplitude, length) order.
	dAmp := hyperGrad(l, dK[0], uData, eta) + halfNormalDLogProb(scalePriorSigma, amp)
	dRho := hyperGrad(l, dK[1], uData, eta) + lengthPriorDLogProb(rho)
	grad[gpLogAmp] = amp*dAmp + 1
	grad[gpLogLength] = rho*dRho + 1

	var dSigma float64
	for i := 0; i < nObs; i++ {
		d := c.y[i] - f.AtVec(i)
		dSigma += d*d/(sigma*sigma*sigma) - 1/sigma
	}
	dSigma += halfNormalDLogProb(scalePriorSigma, sigma)
	grad[gpLogNoise] = sigma*dSigma + 1

	return lp
}

func (c *core) latent(params []float64) ([]float64, error) {
	if len(params) != c.Dim() {
		panic(badLength)
	}
	n := len(c.x)
	rho := math.Exp(params[gpLogLength])
	amp := math.Exp(params[gpLogAmp])
	if !finitePositive(rho) || !finitePositive(amp) {
		return nil, ErrNotPositiveDefinite
	}
	ker := kernel.SqExp{Amplitude: amp, Length: rho}

	k := covMatrix(nil, ker, c.x, 0)
	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		return nil, ErrNotPositiveDefinite
	}
	l := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(l)

	f := mat.NewVecDense(n, nil)
	f.MulVec(l, mat.NewVecDense(n, params[gpNumHyper:]))
	out := make([]float64, n)
	copy(out, f.RawVector().Data)
	return out, nil
}
