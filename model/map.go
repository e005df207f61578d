package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

const badLength = "model: parameter length mismatch"

// ErrBadInit is returned when the starting point of an optimization has an
// invalid (-Inf) log density.
var ErrBadInit = errors.New("model: log density is -Inf at the initial point")

// MAPResult holds the outcome of a MAP optimization.
type MAPResult struct {
	// X is the parameter vector at the located mode.
	X []float64
	// LogDensity is the model log density at X.
	LogDensity float64
}

// MAP locates a posterior mode of m by quasi-Newton minimization of the
// negative log density, starting from init. It is a point-estimate stand-in
// for a full posterior sampler: the same LogDensity/LogDensityGrad pair that
// an external HMC implementation would evaluate is handed to
// optimize.Minimize with the LBFGS method.
func MAP(m Model, init []float64) (*MAPResult, error) {
	if len(init) != m.Dim() {
		panic(badLength)
	}
	if math.IsInf(m.LogDensity(init), -1) {
		return nil, ErrBadInit
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return -m.LogDensity(x)
		},
		Grad: func(grad, x []float64) {
			if len(grad) != m.Dim() {
				panic(badLength)
			}
			m.LogDensityGrad(x, grad)
			floats.Scale(-1, grad)
		},
	}

	result, err := optimize.Minimize(problem, init, nil, &optimize.LBFGS{})
	if err != nil {
		return nil, err
	}
	return &MAPResult{X: result.X, LogDensity: -result.F}, nil
}
