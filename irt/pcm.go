package irt

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/edmetrics/bayesmodels/model"
)

var _ model.Model = &PCM{}

// PCM is the partial credit model. Discriminations are fixed at 1; the
// ability distribution has a free scale with a half-Normal(1) prior:
//
//	theta_j ~ Normal(w_j.lambda, sigma)
//
// An optional latent regression maps person covariates to the ability mean;
// with a nil covariate matrix the regression degenerates to a scalar mean.
type PCM struct {
	*core
}

// NewPCM returns a partial credit model for the responses in d. w is a
// persons-by-covariates matrix whose first column is a constant intercept of
// ones; it may be nil for an intercept-only model.
func NewPCM(d *Data, w mat.Matrix) (*PCM, error) {
	c, err := newCore(d, w, false)
	if err != nil {
		return nil, err
	}
	return &PCM{c}, nil
}

// AbilityScale returns the standard deviation of the ability distribution at
// params.
func (m *PCM) AbilityScale(params []float64) float64 {
	m.check(params)
	return math.Exp(params[m.offShape])
}
