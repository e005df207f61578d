package irt

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNoIntercept is returned when the leading covariate column is not
	// the constant 1.
	ErrNoIntercept = errors.New("irt: covariate matrix must have a leading intercept column of ones")
	// ErrConstantColumn is returned when a non-intercept covariate column
	// has zero variance, which breaks the scaling transform. A constant
	// predictor belongs in the intercept, not in its own column.
	ErrConstantColumn = errors.New("irt: non-intercept covariate column is constant")
	// ErrTooFewRows is returned when covariates cannot be scaled because
	// there are not enough persons to estimate a standard deviation.
	ErrTooFewRows = errors.New("irt: too few persons to scale covariates")
)

// Scaling records the affine rescaling applied to each covariate column, so
// coefficients estimated on the adjusted scale can be reported on the
// original one.
type Scaling struct {
	center []float64
	scale  []float64
}

// ScaleCovariates rescales a J x K covariate matrix whose first column is a
// constant intercept of ones. Continuous columns are centered and divided by
// twice their sample standard deviation; binary (0/1) columns are centered
// and divided by max-min = 1. The rescaling puts covariates of different
// natural scale on comparable footing, which is what makes a shared weak
// prior on the regression coefficients meaningful.
func ScaleCovariates(w mat.Matrix) (*mat.Dense, *Scaling, error) {
	rows, cols := w.Dims()
	for i := 0; i < rows; i++ {
		if w.At(i, 0) != 1 {
			return nil, nil, fmt.Errorf("%w: row %d has %v", ErrNoIntercept, i, w.At(i, 0))
		}
	}
	if cols > 1 && rows < 2 {
		return nil, nil, fmt.Errorf("%w: %d rows", ErrTooFewRows, rows)
	}

	adj := mat.NewDense(rows, cols, nil)
	s := &Scaling{
		center: make([]float64, cols),
		scale:  make([]float64, cols),
	}
	s.scale[0] = 1
	for i := 0; i < rows; i++ {
		adj.Set(i, 0, 1)
	}

	col := make([]float64, rows)
	for j := 1; j < cols; j++ {
		mat.Col(col, j, w)
		mean, sd := stat.MeanStdDev(col, nil)
		if sd == 0 {
			return nil, nil, fmt.Errorf("%w: column %d", ErrConstantColumn, j)
		}
		scale := 2 * sd
		if isBinary(col) {
			scale = 1
		}
		s.center[j] = mean
		s.scale[j] = scale
		for i := 0; i < rows; i++ {
			adj.Set(i, j, (col[i]-mean)/scale)
		}
	}
	return adj, s, nil
}

func isBinary(col []float64) bool {
	for _, v := range col {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

// NumCovariates returns the number of covariate columns, intercept included.
func (s *Scaling) NumCovariates() int { return len(s.scale) }

// OriginalCoefficients maps regression coefficients on the adjusted covariate
// scale back to the original covariate scale.
func (s *Scaling) OriginalCoefficients(adj []float64) []float64 {
	if len(adj) != len(s.scale) {
		panic(badLength)
	}
	orig := make([]float64, len(adj))
	orig[0] = adj[0]
	for j := 1; j < len(adj); j++ {
		orig[j] = adj[j] / s.scale[j]
		orig[0] -= adj[j] * s.center[j] / s.scale[j]
	}
	return orig
}

// AdjustedCoefficients is the inverse of OriginalCoefficients: it maps
// original-scale coefficients onto the adjusted covariate scale.
func (s *Scaling) AdjustedCoefficients(orig []float64) []float64 {
	if len(orig) != len(s.scale) {
		panic(badLength)
	}
	adj := make([]float64, len(orig))
	adj[0] = orig[0]
	for j := 1; j < len(orig); j++ {
		adj[j] = orig[j] * s.scale[j]
		adj[0] += orig[j] * s.center[j]
	}
	return adj
}
