// Package kernel provides covariance kernels over scalar input locations.
package kernel

import "math"

// Kernel computes the covariance between two input locations.
type Kernel interface {
	// Cov returns the covariance between x and y.
	Cov(x, y float64) float64

	// CovDHyper returns the covariance between x and y and stores the
	// derivative of the covariance with respect to each hyperparameter
	// (on the natural, not log, scale) into deriv.
	CovDHyper(x, y float64, deriv []float64) float64

	// NumHyper returns the number of hyperparameters of the kernel.
	NumHyper() int
}

var _ Kernel = SqExp{}

// SqExp is the squared-exponential kernel
//
//	k(x, y) = Amplitude^2 * exp(-0.5 * (x-y)^2 / Length^2)
//
// Both hyperparameters must be strictly positive.
type SqExp struct {
	Amplitude float64 // marginal standard deviation of the process
	Length    float64 // length scale
}

func (k SqExp) NumHyper() int {
	return 2
}

func (k SqExp) Cov(x, y float64) float64 {
	d := x - y
	return k.Amplitude * k.Amplitude * math.Exp(-0.5*d*d/(k.Length*k.Length))
}

// CovDHyper returns the covariance and its derivatives with respect to
// (Amplitude, Length), in that order.
func (k SqExp) CovDHyper(x, y float64, deriv []float64) float64 {
	if len(deriv) != k.NumHyper() {
		panic("kernel: deriv length mismatch")
	}
	d := x - y
	v := k.Cov(x, y)
	deriv[0] = 2 * v / k.Amplitude
	deriv[1] = v * d * d / (k.Length * k.Length * k.Length)
	return v
}
