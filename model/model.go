// Package model defines the contract between probability models and the
// gradient-based procedures that drive them.
//
// A Model is a pure function of a flat parameter vector: it returns the
// unnormalized log density of the parameters given whatever data the model
// was constructed with, and can fill in the gradient of that log density.
// Models hold no mutable state, so a single Model may be evaluated from
// multiple goroutines at once (for example by parallel MCMC chains).
//
// All parameters live on an unconstrained scale. Positive quantities such as
// length-scales or noise standard deviations enter the vector as logarithms,
// and the models include the Jacobian of the exp transform in the density so
// that priors hold on the natural scale.
package model

// Model is an unnormalized log density over a flat parameter vector.
type Model interface {
	// Dim returns the length of the parameter vector.
	Dim() int

	// LogDensity returns the unnormalized log density at x. A proposal
	// that is numerically invalid (for example one whose covariance
	// matrix loses positive-definiteness) yields math.Inf(-1), never NaN,
	// so that a caller can reject it outright.
	LogDensity(x []float64) float64

	// LogDensityGrad returns the log density at x and stores the gradient
	// into grad. len(grad) must equal Dim. When the density is -Inf the
	// gradient is set to zero.
	LogDensityGrad(x, grad []float64) float64
}
