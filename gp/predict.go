package gp

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/edmetrics/bayesmodels/model"
)

var _ model.Model = &Predict{}

// Predict is the joint Gaussian process model over training locations x1
// (with observations y1) and query locations x2 (without observations). The
// kernel matrix is built over the concatenation of x1 and x2 so that the
// query points share the joint Gaussian structure of the training points;
// the likelihood covers only the training slice of the latent vector.
// Predictive draws for the query locations are read off posterior parameter
// draws with Predictive rather than computed from a closed-form conditional.
type Predict struct {
	core
	nTrain int
}

// NewPredict returns a joint model for observations y1 at locations x1 and
// predictions at locations x2. NewPredict panics if x1 and y1 have different
// lengths.
func NewPredict(x1, y1, x2 []float64) (*Predict, error) {
	if len(x1) != len(y1) {
		panic(badInOut)
	}
	if len(x1) == 0 {
		return nil, errors.New("gp: no training data")
	}
	if len(x2) == 0 {
		return nil, errors.New("gp: no prediction locations")
	}
	x := make([]float64, 0, len(x1)+len(x2))
	x = append(x, x1...)
	x = append(x, x2...)
	return &Predict{
		core:   core{x: x, y: y1},
		nTrain: len(x1),
	}, nil
}

// NumPred returns the number of query locations.
func (m *Predict) NumPred() int {
	return len(m.x) - m.nTrain
}

// Latent returns the joint latent function values, covering the training
// locations followed by the query locations.
func (m *Predict) Latent(params []float64) ([]float64, error) {
	return m.core.latent(params)
}

// Predictive draws one predictive sample per query location from a single
// posterior parameter draw: y2[i] ~ Normal(f[nTrain+i], sigma), where f is
// the joint latent vector at params.
func (m *Predict) Predictive(params []float64, src rand.Source) ([]float64, error) {
	f, err := m.latent(params)
	if err != nil {
		return nil, err
	}
	sigma := math.Exp(params[gpLogNoise])
	eps := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	y2 := make([]float64, m.NumPred())
	for i := range y2 {
		y2[i] = f[m.nTrain+i] + eps.Rand()
	}
	return y2, nil
}
