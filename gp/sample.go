package gp

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/edmetrics/bayesmodels/kernel"
)

// Fixed hyperparameters of the prior path sampler. The noise term is a
// variance, added directly to the kernel matrix diagonal.
const (
	sampleAmplitude = 1
	sampleLength    = 1
	sampleNoiseVar  = 0.1
)

// Sampler draws function-plus-noise paths from a zero-mean Gaussian process
// prior with fixed unit amplitude and length-scale and noise variance 0.1:
//
//	y ~ Normal(0, K + 0.1*I)
//
// There are no free parameters and no data; the factorization is done once
// at construction and each Rand call only multiplies the factor by fresh
// standard normals.
type Sampler struct {
	x    []float64
	mean []float64
	chol mat.Cholesky
}

// NewSampler returns a prior path sampler over the input locations x.
func NewSampler(x []float64) (*Sampler, error) {
	if len(x) == 0 {
		return nil, errors.New("gp: no input locations")
	}
	ker := kernel.SqExp{Amplitude: sampleAmplitude, Length: sampleLength}
	k := covMatrix(nil, ker, x, sampleNoiseVar)
	s := &Sampler{
		x:    x,
		mean: make([]float64, len(x)),
	}
	if ok := s.chol.Factorize(k); !ok {
		return nil, ErrNotPositiveDefinite
	}
	return s, nil
}

// Rand draws one path, storing it into dst. If dst is nil new storage is
// allocated. Rand panics if dst has the wrong length.
func (s *Sampler) Rand(dst []float64, src rand.Source) []float64 {
	if dst != nil && len(dst) != len(s.x) {
		panic(badStorage)
	}
	return distmv.NormalRand(dst, s.mean, &s.chol, src)
}
