// Package mcmc implements a single-site Metropolis-Hastings sampler for a
// scalar parameter. The chain proposes from a symmetric Gaussian around the
// current value, scores both points through a Target in log space, and
// accepts with probability min(1, exp(logProposal-logCurrent)).
package mcmc

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Target scores a candidate parameter value with an unnormalized log
// posterior. -Inf marks a zero-density candidate. Implementations must be
// free of side effects; the sampler calls them twice per iteration.
type Target interface {
	LogPosterior(mu float64) float64
}

// densities is the optional wider surface a Target may expose so observer
// snapshots can break the score into prior and likelihood terms.
type densities interface {
	LogPrior(mu float64) float64
	LogLikelihood(mu float64) float64
}

// InvalidParameterError reports a sampler configuration value that violates
// its precondition. No iterations run when one is returned.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Param, e.Value, e.Reason)
}

// Config fixes one chain run. Src lets tests and multi-chain callers inject
// their own randomness; when nil the chain seeds a PCG from Seed, so a run is
// reproducible either way. Sources must be chain-local, never shared across
// concurrently running chains.
type Config struct {
	Samples       int     // iteration count; trace length is Samples+1
	MuInit        float64 // starting value, becomes trace[0]
	ProposalWidth float64 // standard deviation of the Gaussian proposal
	Seed          uint64
	Src           rand.Source // optional; overrides Seed when set
	Observer      Observer    // optional; nil runs headless
}

// Validate checks the configuration preconditions.
func (c *Config) Validate() error {
	if c.Samples < 0 {
		return &InvalidParameterError{Param: "samples", Value: float64(c.Samples),
			Reason: "iteration count must be >= 0"}
	}
	if !(c.ProposalWidth > 0) || math.IsInf(c.ProposalWidth, 1) {
		return &InvalidParameterError{Param: "proposal_width", Value: c.ProposalWidth,
			Reason: "proposal width must be finite and > 0"}
	}
	if math.IsNaN(c.MuInit) || math.IsInf(c.MuInit, 0) {
		return &InvalidParameterError{Param: "mu_init", Value: c.MuInit,
			Reason: "initial value must be finite"}
	}
	return nil
}

func (c *Config) source() rand.Source {
	if c.Src != nil {
		return c.Src
	}
	return rand.NewPCG(c.Seed, c.Seed)
}

// Run drives one Metropolis-Hastings chain against target and returns the
// trace: MuInit followed by one entry per iteration. Targets that also
// implement Validate() error are validated up front, so a bad model or a bad
// Config fails before any iteration and produces no partial trace.
func Run(target Target, cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if v, ok := target.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	rng := rand.New(cfg.source())
	trace := make([]float64, 1, cfg.Samples+1)
	trace[0] = cfg.MuInit

	cur := cfg.MuInit
	logCur := logScore(target, cur)
	for i := 0; i < cfg.Samples; i++ {
		prop := cur + cfg.ProposalWidth*rng.NormFloat64()
		logProp := logScore(target, prop)
		accepted := accept(logCur, logProp, rng)
		if accepted {
			cur = prop
			logCur = logProp
		}
		trace = append(trace, cur)
		if cfg.Observer != nil {
			cfg.Observer.Step(snapshot(target, i, cur, prop, accepted, logCur, logProp, trace))
		}
	}
	return trace, nil
}

// logScore wraps Target.LogPosterior, folding NaN into -Inf so a degenerate
// density rejects cleanly instead of smuggling NaN into the accept test.
func logScore(t Target, mu float64) float64 {
	l := t.LogPosterior(mu)
	if math.IsNaN(l) {
		return math.Inf(-1)
	}
	return l
}

// accept applies the Metropolis rule in log space. A zero-density current
// point (logCur == -Inf) accepts any proposal with positive density, and a
// 0/0 ratio (both -Inf) rejects, so the chain never moves on an undefined
// ratio.
func accept(logCur, logProp float64, rng *rand.Rand) bool {
	if math.IsInf(logProp, -1) {
		return false
	}
	if math.IsInf(logCur, -1) {
		return true
	}
	logA := logProp - logCur
	return logA >= 0 || rng.Float64() < math.Exp(logA)
}

// snapshot builds the per-iteration observer record, reusing the two log
// posterior scores the acceptance test already paid for. Current is the
// post-decision value, i.e. the entry just appended to the trace.
func snapshot(t Target, i int, cur, prop float64, accepted bool, logCur, logProp float64, trace []float64) Snapshot {
	s := Snapshot{
		Iteration:            i,
		Current:              cur,
		Proposal:             prop,
		Accepted:             accepted,
		LogPosteriorCurrent:  logCur,
		LogPosteriorProposal: logProp,
		Trace:                trace,
	}
	if d, ok := t.(densities); ok {
		s.LogPriorCurrent = d.LogPrior(cur)
		s.LogPriorProposal = d.LogPrior(prop)
		s.LogLikelihoodCurrent = d.LogLikelihood(cur)
		s.LogLikelihoodProposal = d.LogLikelihood(prop)
	} else {
		s.LogPriorCurrent = math.NaN()
		s.LogPriorProposal = math.NaN()
		s.LogLikelihoodCurrent = math.NaN()
		s.LogLikelihoodProposal = math.NaN()
	}
	return s
}
