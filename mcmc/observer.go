package mcmc

import (
	"bufio"
	"fmt"
	"io"
)

// Snapshot is the read-only record handed to an Observer once per iteration.
// Current is the value retained after the accept/reject decision, so it
// always equals the last trace entry; the pre-decision value is
// Trace[Iteration]. Prior and likelihood terms are NaN when the Target does
// not expose them separately.
type Snapshot struct {
	Iteration int
	Current   float64
	Proposal  float64
	Accepted  bool

	LogPriorCurrent       float64
	LogPriorProposal      float64
	LogLikelihoodCurrent  float64
	LogLikelihoodProposal float64
	LogPosteriorCurrent   float64
	LogPosteriorProposal  float64

	// Trace is the chain so far, including this iteration. It aliases the
	// sampler's buffer: read it, never modify it.
	Trace []float64
}

// Observer receives one Snapshot per iteration. Observers are diagnostics
// only; the sampler produces the same trace whether or not one is attached.
type Observer interface {
	Step(Snapshot)
}

// MultiObserver fans each snapshot out to every member in order.
type MultiObserver []Observer

func (m MultiObserver) Step(s Snapshot) {
	for _, o := range m {
		o.Step(s)
	}
}

// AcceptanceMeter counts accepted proposals. A healthy chain sits well away
// from both 0 and 1.
type AcceptanceMeter struct {
	Steps    int
	Accepted int
}

func (a *AcceptanceMeter) Step(s Snapshot) {
	a.Steps++
	if s.Accepted {
		a.Accepted++
	}
}

func (a *AcceptanceMeter) Rate() float64 {
	if a.Steps == 0 {
		return 0
	}
	return float64(a.Accepted) / float64(a.Steps)
}

// TraceWriter streams one TSV row per iteration, header first. Flush before
// reading whatever it wrote.
type TraceWriter struct {
	w      *bufio.Writer
	header bool
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: bufio.NewWriter(w)}
}

func (t *TraceWriter) Step(s Snapshot) {
	if !t.header {
		fmt.Fprintln(t.w, "iteration\tmu\tproposal\taccepted\tlog_posterior")
		t.header = true
	}
	fmt.Fprintf(t.w, "%d\t%g\t%g\t%t\t%g\n",
		s.Iteration, s.Current, s.Proposal, s.Accepted, s.LogPosteriorCurrent)
}

func (t *TraceWriter) Flush() error {
	return t.w.Flush()
}
