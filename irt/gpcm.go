package irt

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/edmetrics/bayesmodels/model"
)

var _ model.Model = &GPCM{}

// GPCM is the generalized partial credit model: the PCM with a free
// discrimination per item, log alpha_i ~ Normal(0, 1). The ability scale is
// fixed at 1, as the overall scale is identified by the discriminations.
type GPCM struct {
	*core
}

// NewGPCM returns a generalized partial credit model for the responses in d.
// w is a persons-by-covariates matrix whose first column is a constant
// intercept of ones; it may be nil for an intercept-only model.
func NewGPCM(d *Data, w mat.Matrix) (*GPCM, error) {
	c, err := newCore(d, w, true)
	if err != nil {
		return nil, err
	}
	return &GPCM{c}, nil
}

// Discriminations returns the item discriminations at params on the natural
// scale.
func (m *GPCM) Discriminations(params []float64) []float64 {
	m.check(params)
	disc := make([]float64, m.data.NumItems())
	for i := range disc {
		disc[i] = math.Exp(params[m.offShape+i])
	}
	return disc
}
