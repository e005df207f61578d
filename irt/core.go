package irt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Priors shared by PCM and GPCM. Free step difficulties get a wide normal;
// regression coefficients get a weak Student's t on the adjusted covariate
// scale; GPCM discriminations get a standard normal on the log scale; the
// PCM ability scale gets a half-Normal(1).
const (
	stepPriorSigma = 3
	coefPriorNu    = 3
	coefPriorSigma = 1
)

var coefPrior = distuv.StudentsT{Mu: 0, Sigma: coefPriorSigma, Nu: coefPriorNu}

// core is the ordinal response model shared by PCM and GPCM. The parameter
// vector is laid out as
//
//	[ theta_1..theta_J | shape | free steps | lambda_1..lambda_K ]
//
// where shape is the per-item log discriminations for the GPCM and the log
// ability scale for the PCM, free steps holds maxScore(i)-1 entries per item
// and lambda are the latent regression coefficients on the adjusted
// covariate scale.
type core struct {
	data    *Data
	w       *mat.Dense // adjusted covariates, J x K
	scaling *Scaling
	disc    bool // per-item discriminations (GPCM)

	freeOff []int // per-item offset into the free step block
	fullOff []int // per-item offset into the expanded step block
	maxCat  int   // largest maximum score across items

	offShape int
	offSteps int
	offCoef  int
	dim      int
}

func newCore(d *Data, w mat.Matrix, disc bool) (*core, error) {
	c := &core{data: d, disc: disc}

	if w == nil {
		// Intercept-only: the regression degenerates to a scalar
		// ability mean.
		w = onesColumn(d.NumPersons())
	}
	rows, _ := w.Dims()
	if rows != d.NumPersons() {
		return nil, fmt.Errorf("irt: covariate matrix has %d rows for %d persons", rows, d.NumPersons())
	}
	adj, scaling, err := ScaleCovariates(w)
	if err != nil {
		return nil, err
	}
	c.w = adj
	c.scaling = scaling

	c.freeOff = make([]int, d.NumItems())
	c.fullOff = make([]int, d.NumItems())
	var nFree, nFull int
	for i := 0; i < d.NumItems(); i++ {
		c.freeOff[i] = nFree
		c.fullOff[i] = nFull
		m := d.MaxScore(i)
		nFree += m - 1
		nFull += m
		if m > c.maxCat {
			c.maxCat = m
		}
	}

	nShape := 1
	if disc {
		nShape = d.NumItems()
	}
	c.offShape = d.NumPersons()
	c.offSteps = c.offShape + nShape
	c.offCoef = c.offSteps + nFree
	c.dim = c.offCoef + scaling.NumCovariates()
	return c, nil
}

func onesColumn(n int) *mat.Dense {
	col := make([]float64, n)
	for i := range col {
		col[i] = 1
	}
	return mat.NewDense(n, 1, col)
}

func (c *core) Dim() int { return c.dim }

// Init returns a starting parameter vector of zeros: zero abilities and
// difficulties, unit discriminations and ability scale, zero coefficients.
func (c *core) Init() []float64 {
	return make([]float64, c.dim)
}

// Data returns the response data the model was built with.
func (c *core) Data() *Data { return c.data }

// Scaling returns the covariate scaling applied by the model.
func (c *core) Scaling() *Scaling { return c.scaling }

// Abilities returns the person ability slice of params.
func (c *core) Abilities(params []float64) []float64 {
	c.check(params)
	return params[:c.offShape]
}

// Coefficients returns the latent regression coefficients of params, on the
// adjusted covariate scale.
func (c *core) Coefficients(params []float64) []float64 {
	c.check(params)
	return params[c.offCoef:]
}

// OriginalCoefficients returns the latent regression coefficients of params
// back-transformed to the original covariate scale.
func (c *core) OriginalCoefficients(params []float64) []float64 {
	return c.scaling.OriginalCoefficients(c.Coefficients(params))
}

// Steps returns the full step difficulties of item i at params, including
// the derived last difficulty. The returned slice is freshly allocated.
func (c *core) Steps(params []float64, item int) []float64 {
	c.check(params)
	m := c.data.MaxScore(item)
	full := make([]float64, m)
	expandSteps(full, c.freeSteps(params, item))
	return full
}

func (c *core) freeSteps(params []float64, item int) []float64 {
	off := c.offSteps + c.freeOff[item]
	return params[off : off+c.data.MaxScore(item)-1]
}

func (c *core) check(params []float64) {
	if len(params) != c.dim {
		panic(badLength)
	}
}

func (c *core) LogDensity(params []float64) float64 {
	return c.eval(params, nil)
}

func (c *core) LogDensityGrad(params, grad []float64) float64 {
	if len(grad) != c.dim {
		panic(badLength)
	}
	return c.eval(params, grad)
}

// eval computes the joint log density at params and, when grad is non-nil,
// its gradient. All buffers are local, so concurrent evaluations of the same
// model are safe.
func (c *core) eval(params, grad []float64) float64 {
	c.check(params)
	d := c.data
	nI := d.NumItems()
	nJ := d.NumPersons()
	nK := c.scaling.NumCovariates()

	theta := params[:c.offShape]
	lambda := params[c.offCoef:]

	sigmaTheta := 1.0
	if !c.disc {
		sigmaTheta = math.Exp(params[c.offShape])
		if !finitePositive(sigmaTheta) {
			return rejected(grad)
		}
	} else {
		for i := 0; i < nI; i++ {
			if !finitePositive(math.Exp(params[c.offShape+i])) {
				return rejected(grad)
			}
		}
	}

	// Expand all step difficulties once per evaluation.
	full := make([]float64, c.fullOff[nI-1]+d.MaxScore(nI-1))
	for i := 0; i < nI; i++ {
		expandSteps(full[c.fullOff[i]:c.fullOff[i]+d.MaxScore(i)], c.freeSteps(params, i))
	}

	// Latent regression mean per person.
	mu := mat.NewVecDense(nJ, nil)
	mu.MulVec(c.w, mat.NewVecDense(nK, lambda))

	if grad != nil {
		zeroFloats(grad)
	}
	gFull := make([]float64, len(full))

	var lp float64
	lpBuf := make([]float64, c.maxCat+1)
	for n := 0; n < d.NumResponses(); n++ {
		i, j, y := d.item[n], d.person[n], d.score[n]
		m := d.MaxScore(i)
		a := 1.0
		if c.disc {
			a = math.Exp(params[c.offShape+i])
		}
		steps := full[c.fullOff[i] : c.fullOff[i]+m]
		lps := lpBuf[:m+1]
		scoreLogProbs(lps, theta[j], a, steps)
		lp += lps[y]
		if grad == nil {
			continue
		}

		// d logPr/d theta = a*(y - E[K]); the same factor drives the
		// discrimination gradient.
		var ek float64
		for k := 1; k <= m; k++ {
			ek += float64(k) * math.Exp(lps[k])
		}
		grad[j] += a * (float64(y) - ek)
		if c.disc {
			grad[c.offShape+i] += a * theta[j] * (float64(y) - ek)
		}
		// d logPr/d beta_s = Pr(K >= s) - 1[s <= y], accumulated from
		// the top category down.
		var tail float64
		for s := m; s >= 1; s-- {
			tail += math.Exp(lps[s])
			g := tail
			if s <= y {
				g--
			}
			gFull[c.fullOff[i]+s-1] += g
		}
	}

	// Ability distribution and priors.
	abil := distuv.Normal{Sigma: sigmaTheta}
	for j := 0; j < nJ; j++ {
		abil.Mu = mu.AtVec(j)
		lp += abil.LogProb(theta[j])
	}
	if c.disc {
		for i := 0; i < nI; i++ {
			lp += distuv.UnitNormal.LogProb(params[c.offShape+i])
		}
	} else {
		// Half-Normal(1) on the natural scale plus the log-Jacobian of
		// the exp transform.
		lp += math.Ln2 + distuv.UnitNormal.LogProb(sigmaTheta) + params[c.offShape]
	}
	stepPrior := distuv.Normal{Mu: 0, Sigma: stepPriorSigma}
	for _, b := range params[c.offSteps:c.offCoef] {
		lp += stepPrior.LogProb(b)
	}
	for _, l := range lambda {
		lp += coefPrior.LogProb(l)
	}
	if grad == nil {
		return lp
	}

	varTheta := sigmaTheta * sigmaTheta
	var dSigma float64
	for j := 0; j < nJ; j++ {
		r := theta[j] - mu.AtVec(j)
		grad[j] -= r / varTheta
		dSigma += r*r/(varTheta*sigmaTheta) - 1/sigmaTheta
	}
	if c.disc {
		for i := 0; i < nI; i++ {
			grad[c.offShape+i] -= params[c.offShape+i]
		}
	} else {
		dSigma -= sigmaTheta // half-Normal(1)
		grad[c.offShape] = sigmaTheta*dSigma + 1
	}
	for i := 0; i < nI; i++ {
		m := d.MaxScore(i)
		chainStepsGrad(grad[c.offSteps+c.freeOff[i]:c.offSteps+c.freeOff[i]+m-1],
			gFull[c.fullOff[i]:c.fullOff[i]+m])
	}
	for s := c.offSteps; s < c.offCoef; s++ {
		grad[s] -= params[s] / (stepPriorSigma * stepPriorSigma)
	}
	// d lambda: regression residuals through W plus the Student's t prior.
	resid := mat.NewVecDense(nJ, nil)
	for j := 0; j < nJ; j++ {
		resid.SetVec(j, (theta[j]-mu.AtVec(j))/varTheta)
	}
	gLambda := mat.NewVecDense(nK, nil)
	gLambda.MulVec(c.w.T(), resid)
	for k := 0; k < nK; k++ {
		l := lambda[k]
		grad[c.offCoef+k] = gLambda.AtVec(k) -
			(coefPriorNu+1)*l/(coefPriorNu*coefPriorSigma*coefPriorSigma+l*l)
	}
	return lp
}

func zeroFloats(x []float64) {
	for i := range x {
		x[i] = 0
	}
}

// finitePositive reports whether a log-parameterized positive quantity came
// through the exp transform without overflow or underflow.
func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// rejected zeroes grad (when present) and returns -Inf, signalling an
// invalid proposal to the driving sampler instead of propagating NaNs.
func rejected(grad []float64) float64 {
	if grad != nil {
		zeroFloats(grad)
	}
	return math.Inf(-1)
}
