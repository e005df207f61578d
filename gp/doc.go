// Package gp implements Gaussian process models over scalar input
// locations: a regression model (Fit), a joint train-plus-query model whose
// posterior yields predictive draws (Predict), and a fixed-hyperparameter
// prior path sampler (Sampler).
//
// Fit and Predict use the non-centered parameterization: the latent function
// values are f = L*eta, where L is the Cholesky factor of the kernel matrix
// and eta is a vector of free standard-normal auxiliary parameters. The
// geometry of f is fixed by the hyperparameters while the randomness lives in
// eta, which keeps the posterior well conditioned for gradient-based
// samplers. Both models satisfy model.Model with analytic gradients,
// differentiating through the Cholesky factorization.
package gp
