// Package model holds the normal-likelihood, normal-prior model whose mean we
// sample. It scores candidate means with an unnormalized posterior and also
// carries the closed-form conjugate posterior used to validate chains.
package model

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// InvalidParameterError reports a hyperparameter that violates its
// precondition. Param names the offending field.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Param, e.Value, e.Reason)
}

// Model fixes the observed data and hyperparameters for one sampling run.
// Nothing here is mutated after construction, so a single Model may score
// candidates for several chains at once.
type Model struct {
	Data       []float64
	Sigma      float64 // known likelihood standard deviation
	PriorMu    float64
	PriorSigma float64
}

// Validate checks the hyperparameter preconditions. The negated comparisons
// also reject NaN.
func (m *Model) Validate() error {
	if !(m.Sigma > 0) || math.IsInf(m.Sigma, 1) {
		return &InvalidParameterError{Param: "sigma", Value: m.Sigma,
			Reason: "likelihood standard deviation must be finite and > 0"}
	}
	if !(m.PriorSigma > 0) || math.IsInf(m.PriorSigma, 1) {
		return &InvalidParameterError{Param: "prior_sigma", Value: m.PriorSigma,
			Reason: "prior standard deviation must be finite and > 0"}
	}
	return nil
}

// LogLikelihood sums the log-density of every observation under
// N(mu, m.Sigma). The sum stays finite long after the raw density product
// would underflow to zero, which it does within a few dozen points.
func (m *Model) LogLikelihood(mu float64) float64 {
	like := distuv.Normal{Mu: mu, Sigma: m.Sigma}
	ll := 0.0
	for _, x := range m.Data {
		ll += like.LogProb(x)
	}
	return ll
}

// LogPrior is the log-density of the N(PriorMu, PriorSigma) prior at mu.
func (m *Model) LogPrior(mu float64) float64 {
	return distuv.Normal{Mu: m.PriorMu, Sigma: m.PriorSigma}.LogProb(mu)
}

// LogPosterior is the unnormalized log posterior score at mu. A score of
// -Inf marks a zero-density candidate.
func (m *Model) LogPosterior(mu float64) float64 {
	return m.LogLikelihood(mu) + m.LogPrior(mu)
}

// Posterior is exp(LogPosterior). Display only: it underflows to 0 for
// non-toy data sizes, so every ratio inside the sampler works in log space.
func (m *Model) Posterior(mu float64) float64 {
	return math.Exp(m.LogPosterior(mu))
}

// Conjugate returns the exact posterior N(mean, sd) of the mean under this
// conjugate Gaussian-Gaussian model. Chains should land on this.
func (m *Model) Conjugate() (mean, sd float64) {
	n := float64(len(m.Data))
	sum := 0.0
	for _, x := range m.Data {
		sum += x
	}
	priorPrec := 1 / (m.PriorSigma * m.PriorSigma)
	dataPrec := n / (m.Sigma * m.Sigma)
	mean = (m.PriorMu*priorPrec + sum/(m.Sigma*m.Sigma)) / (priorPrec + dataPrec)
	sd = math.Sqrt(1 / (priorPrec + dataPrec))
	return mean, sd
}

// GenerateData draws n synthetic observations from N(mu, sigma) using src,
// so demo data is reproducible from a seed.
func GenerateData(n int, mu, sigma float64, src rand.Source) []float64 {
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
