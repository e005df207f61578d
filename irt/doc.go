// Package irt implements ordinal item response models: the partial credit
// model (PCM) and the generalized partial credit model (GPCM), optionally
// with a latent regression of person ability on observed covariates.
//
// The response probability uses the cumulative step formulation: for a
// person with ability theta answering an item with discrimination a and step
// difficulties beta[0..m-1],
//
//	Pr(Y = y) is proportional to exp(sum_{s<=y} (a*theta - beta[s]))
//
// with the empty sum for y = 0. The normalizing constant is evaluated in log
// space with a log-sum-exp over the cumulative sums, so large abilities or
// many categories do not overflow. A dichotomous item (m = 1) reduces to the
// two-parameter logistic model through the same code path.
//
// Each item's step difficulties sum to zero: the last difficulty is derived
// from the item's free ones, so the models expose m-1 free dimensions per
// item to the sampler.
//
// Both models satisfy model.Model with analytic gradients.
package irt
