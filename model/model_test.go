package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// logNorm is the reference N(mu, sigma) log-density, written out directly so
// the test does not share code with the implementation.
func logNorm(x, mu, sigma float64) float64 {
	return -0.5*math.Log(2*math.Pi*sigma*sigma) - (x-mu)*(x-mu)/(2*sigma*sigma)
}

func TestLogPosteriorMatchesDirectComputation(t *testing.T) {
	m := &Model{
		Data:       []float64{0.5, -0.3, 1.2},
		Sigma:      1,
		PriorMu:    0,
		PriorSigma: 1,
	}
	mu := 0.4

	want := logNorm(mu, m.PriorMu, m.PriorSigma)
	for _, x := range m.Data {
		want += logNorm(x, mu, m.Sigma)
	}
	require.InDelta(t, want, m.LogPosterior(mu), 1e-12)
	require.InDelta(t, want-logNorm(mu, m.PriorMu, m.PriorSigma), m.LogLikelihood(mu), 1e-12)
	require.InDelta(t, logNorm(mu, m.PriorMu, m.PriorSigma), m.LogPrior(mu), 1e-12)
}

func TestPosteriorIsExpOfLogPosterior(t *testing.T) {
	m := &Model{Data: []float64{0.1, -0.2}, Sigma: 1, PriorMu: 0, PriorSigma: 1}
	for _, mu := range []float64{-2, 0, 0.7, 3} {
		require.InDelta(t, math.Exp(m.LogPosterior(mu)), m.Posterior(mu), 1e-15)
	}
}

// With a couple thousand points the raw density product underflows to
// exactly zero while the log score stays finite. The sampler depends on the
// log form for this reason.
func TestRawPosteriorUnderflowsWhereLogSurvives(t *testing.T) {
	data := make([]float64, 2000)
	for i := range data {
		data[i] = 3.0
	}
	m := &Model{Data: data, Sigma: 1, PriorMu: 0, PriorSigma: 1}

	lp := m.LogPosterior(0)
	require.False(t, math.IsInf(lp, -1))
	require.False(t, math.IsNaN(lp))
	require.Less(t, lp, -1000.0)
	require.Zero(t, m.Posterior(0))
}

func TestConjugateMatchesDirectFormula(t *testing.T) {
	data := GenerateData(20, 0.3, 1, rand.NewPCG(7, 7))
	m := &Model{Data: data, Sigma: 1, PriorMu: 0, PriorSigma: 1}

	sum := 0.0
	for _, x := range data {
		sum += x
	}
	n := float64(len(data))
	prec := 1/(m.PriorSigma*m.PriorSigma) + n/(m.Sigma*m.Sigma)
	wantMean := (m.PriorMu/(m.PriorSigma*m.PriorSigma) + sum/(m.Sigma*m.Sigma)) / prec
	wantSD := math.Sqrt(1 / prec)

	mean, sd := m.Conjugate()
	require.InDelta(t, wantMean, mean, 1e-12)
	require.InDelta(t, wantSD, sd, 1e-12)
}

func TestConjugateShrinksTowardData(t *testing.T) {
	// A tight prior at 0 and data at 5: the posterior mean must land strictly
	// between, and the posterior sd below the prior sd.
	m := &Model{Data: []float64{5, 5, 5, 5}, Sigma: 1, PriorMu: 0, PriorSigma: 1}
	mean, sd := m.Conjugate()
	require.Greater(t, mean, 0.0)
	require.Less(t, mean, 5.0)
	require.Less(t, sd, m.PriorSigma)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		m     Model
		param string
	}{
		{"zero sigma", Model{Sigma: 0, PriorSigma: 1}, "sigma"},
		{"negative sigma", Model{Sigma: -1, PriorSigma: 1}, "sigma"},
		{"NaN sigma", Model{Sigma: math.NaN(), PriorSigma: 1}, "sigma"},
		{"zero prior sigma", Model{Sigma: 1, PriorSigma: 0}, "prior_sigma"},
		{"negative prior sigma", Model{Sigma: 1, PriorSigma: -0.5}, "prior_sigma"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			require.Error(t, err)
			var ipe *InvalidParameterError
			require.ErrorAs(t, err, &ipe)
			require.Equal(t, tc.param, ipe.Param)
		})
	}

	ok := Model{Data: []float64{1}, Sigma: 1, PriorMu: 0, PriorSigma: 2}
	require.NoError(t, ok.Validate())
}

func TestGenerateDataReproducible(t *testing.T) {
	a := GenerateData(50, 1.5, 2, rand.NewPCG(11, 11))
	b := GenerateData(50, 1.5, 2, rand.NewPCG(11, 11))
	require.Equal(t, a, b)
	require.Len(t, a, 50)

	c := GenerateData(50, 1.5, 2, rand.NewPCG(12, 12))
	require.NotEqual(t, a, c)
}
