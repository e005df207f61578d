package irt

import (
	"gonum.org/v1/gonum/floats"
)

const badLength = "irt: parameter length mismatch"

// expandSteps writes an item's full step difficulties given its free ones:
// the leading difficulties are copied and the last is the negative of their
// sum, so the full set always sums to zero. len(full) must be len(free)+1.
func expandSteps(full, free []float64) {
	if len(full) != len(free)+1 {
		panic(badLength)
	}
	var sum float64
	for s, b := range free {
		full[s] = b
		sum += b
	}
	full[len(free)] = -sum
}

// chainStepsGrad accumulates a gradient with respect to an item's full step
// difficulties into the gradient with respect to its free ones, chaining
// through the sum-to-zero transform.
func chainStepsGrad(freeGrad, fullGrad []float64) {
	if len(fullGrad) != len(freeGrad)+1 {
		panic(badLength)
	}
	last := fullGrad[len(fullGrad)-1]
	for s := range freeGrad {
		freeGrad[s] += fullGrad[s] - last
	}
}

// scoreLogProbs fills lp (length m+1, where m = len(steps)) with the log
// probability of each score 0..m for ability theta, discrimination disc and
// full step difficulties steps. The cumulative sums are normalized with a
// log-sum-exp, so the computation stays in log space throughout.
func scoreLogProbs(lp []float64, theta, disc float64, steps []float64) {
	if len(lp) != len(steps)+1 {
		panic(badLength)
	}
	lp[0] = 0
	var c float64
	for s, b := range steps {
		c += disc*theta - b
		lp[s+1] = c
	}
	logZ := floats.LogSumExp(lp)
	for k := range lp {
		lp[k] -= logZ
	}
}

// ScoreLogProb returns log Pr(Y = y) for a single response: ability theta,
// discrimination disc and full step difficulties steps (one per step, so the
// maximum score is len(steps)). A single step reproduces the two-parameter
// logistic model. ScoreLogProb panics if y is outside [0, len(steps)].
func ScoreLogProb(theta, disc float64, steps []float64, y int) float64 {
	if y < 0 || y > len(steps) {
		panic("irt: score out of range")
	}
	lp := make([]float64, len(steps)+1)
	scoreLogProbs(lp, theta, disc, steps)
	return lp[y]
}
