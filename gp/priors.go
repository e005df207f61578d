package gp

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Hyperparameter priors used by Fit and Predict, on the natural scale:
// length-scale ~ Gamma(4, 4), amplitude and noise ~ half-Normal(1).
const (
	lengthPriorShape = 4
	lengthPriorRate  = 4
	scalePriorSigma  = 1
)

func lengthPriorLogProb(rho float64) float64 {
	return distuv.Gamma{Alpha: lengthPriorShape, Beta: lengthPriorRate}.LogProb(rho)
}

func lengthPriorDLogProb(rho float64) float64 {
	return (lengthPriorShape-1)/rho - lengthPriorRate
}

// halfNormalLogProb is the log density of |Normal(0, sigma)| at x >= 0.
func halfNormalLogProb(sigma, x float64) float64 {
	return math.Ln2 + distuv.Normal{Mu: 0, Sigma: sigma}.LogProb(x)
}

func halfNormalDLogProb(sigma, x float64) float64 {
	return -x / (sigma * sigma)
}
