package irt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestScoreLogProbDichotomous(t *testing.T) {
	// With a single step the general formula must collapse to the
	// two-parameter logistic model.
	thetas := []float64{-2, -0.5, 0, 0.3, 1.7}
	discs := []float64{0.5, 1, 2.3}
	betas := []float64{-1.2, 0, 0.8}
	for _, theta := range thetas {
		for _, a := range discs {
			for _, b := range betas {
				z := a*theta - b
				want1 := -math.Log1p(math.Exp(-z))
				want0 := -math.Log1p(math.Exp(z))
				require.InDelta(t, want1, ScoreLogProb(theta, a, []float64{b}, 1), 1e-12)
				require.InDelta(t, want0, ScoreLogProb(theta, a, []float64{b}, 0), 1e-12)
			}
		}
	}
}

func TestScoreLogProbHalf(t *testing.T) {
	// theta = 0, beta = 0, m = 1: both categories exactly equally likely.
	lp := ScoreLogProb(0, 1, []float64{0}, 1)
	require.InDelta(t, math.Log(0.5), lp, 1e-15)
	require.InDelta(t, 0.5, math.Exp(lp), 1e-15)
}

func TestScoreLogProbsNormalized(t *testing.T) {
	steps := []float64{-0.7, 0.2, 1.1}
	for _, theta := range []float64{-300, -2, 0, 2, 300} {
		lp := make([]float64, len(steps)+1)
		scoreLogProbs(lp, theta, 1.3, steps)
		var sum float64
		for _, v := range lp {
			require.False(t, math.IsNaN(v))
			sum += math.Exp(v)
		}
		require.InDelta(t, 1, sum, 1e-12)
	}
}

func TestOrdinalStochasticDominance(t *testing.T) {
	// Pr(Y >= k) must be nondecreasing in theta for every k.
	steps := []float64{0.4, -0.9, 1.3}
	m := len(steps)
	prev := make([]float64, m+1)
	first := true
	for theta := -4.0; theta <= 4.0; theta += 0.25 {
		lp := make([]float64, m+1)
		scoreLogProbs(lp, theta, 1.7, steps)
		tail := make([]float64, m+1)
		acc := 0.0
		for k := m; k >= 0; k-- {
			acc += math.Exp(lp[k])
			tail[k] = acc
		}
		if !first {
			for k := 1; k <= m; k++ {
				require.GreaterOrEqual(t, tail[k], prev[k]-1e-12, "k=%d theta=%v", k, theta)
			}
		}
		copy(prev, tail)
		first = false
	}
}

func testData(t *testing.T) *Data {
	t.Helper()
	// Two items: item 0 has max score 2, item 1 is dichotomous. Three
	// persons.
	item := []int{0, 0, 0, 1, 1, 1}
	person := []int{0, 1, 2, 0, 1, 2}
	score := []int{2, 1, 0, 1, 0, 1}
	d, err := NewData(item, person, score, nil)
	require.NoError(t, err)
	return d
}

func TestNewDataValidation(t *testing.T) {
	_, err := NewData([]int{0}, []int{0, 1}, []int{1}, nil)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewData(nil, nil, nil, nil)
	require.ErrorIs(t, err, ErrEmptyData)

	_, err = NewData([]int{-1}, []int{0}, []int{1}, nil)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = NewData([]int{0}, []int{0}, []int{3}, []int{2})
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	_, err = NewData([]int{0}, []int{0}, []int{-1}, []int{2})
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	_, err = NewData([]int{1}, []int{0}, []int{1}, []int{2})
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	// All-zero scores leave the item's category count unknown.
	_, err = NewData([]int{0}, []int{0}, []int{0}, nil)
	require.ErrorIs(t, err, ErrNoResponses)

	d, err := NewData([]int{0, 1}, []int{0, 0}, []int{2, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, d.NumItems())
	require.Equal(t, 1, d.NumPersons())
	require.Equal(t, 2, d.MaxScore(0))
	require.Equal(t, 1, d.MaxScore(1))
}

func TestStepsSumToZero(t *testing.T) {
	d := testData(t)
	m, err := NewGPCM(d, nil)
	require.NoError(t, err)

	params := m.Init()
	// Item 0 has one free step; item 1 has none.
	params[m.offSteps] = 1.4
	for i := 0; i < d.NumItems(); i++ {
		steps := m.Steps(params, i)
		require.Len(t, steps, d.MaxScore(i))
		var sum float64
		for _, b := range steps {
			sum += b
		}
		require.InDelta(t, 0, sum, 1e-12)
	}
	require.Equal(t, []float64{1.4, -1.4}, m.Steps(params, 0))
	require.Equal(t, []float64{0}, m.Steps(params, 1))
}

func TestPCMGradient(t *testing.T) {
	d := testData(t)
	w := covariates()
	m, err := NewPCM(d, w)
	require.NoError(t, err)
	// theta (3) + log scale (1) + free steps (1) + lambda (2).
	require.Equal(t, 7, m.Dim())

	params := []float64{0.4, -0.7, 0.2, -0.3, 0.6, 0.1, -0.5}
	checkGradient(t, m, params)
}

func TestGPCMGradient(t *testing.T) {
	d := testData(t)
	w := covariates()
	m, err := NewGPCM(d, w)
	require.NoError(t, err)
	// theta (3) + log disc (2) + free steps (1) + lambda (2).
	require.Equal(t, 8, m.Dim())

	params := []float64{0.4, -0.7, 0.2, 0.3, -0.2, 0.6, 0.1, -0.5}
	checkGradient(t, m, params)
}

func TestInterceptOnlyGradient(t *testing.T) {
	d := testData(t)
	m, err := NewPCM(d, nil)
	require.NoError(t, err)
	// theta (3) + log scale (1) + free steps (1) + lambda (1).
	require.Equal(t, 6, m.Dim())

	params := []float64{0.4, -0.7, 0.2, -0.3, 0.6, 0.8}
	checkGradient(t, m, params)
}

func TestRejectsOverflowedScale(t *testing.T) {
	d := testData(t)
	m, err := NewPCM(d, nil)
	require.NoError(t, err)

	params := m.Init()
	params[m.offShape] = 800 // exp overflows
	require.True(t, math.IsInf(m.LogDensity(params), -1))

	grad := make([]float64, m.Dim())
	for i := range grad {
		grad[i] = 3
	}
	lp := m.LogDensityGrad(params, grad)
	require.True(t, math.IsInf(lp, -1))
	for _, g := range grad {
		require.Zero(t, g)
	}
}

func checkGradient(t *testing.T, m interface {
	LogDensity([]float64) float64
	LogDensityGrad([]float64, []float64) float64
}, params []float64) {
	t.Helper()
	grad := make([]float64, len(params))
	lp := m.LogDensityGrad(params, grad)
	require.InDelta(t, m.LogDensity(params), lp, 1e-12)
	require.False(t, math.IsNaN(lp))

	want := fd.Gradient(nil, m.LogDensity, params, &fd.Settings{Formula: fd.Central})
	for i := range want {
		require.InDelta(t, want[i], grad[i], 1e-5, "component %d", i)
	}
}
