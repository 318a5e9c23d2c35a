package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsRunnable(t *testing.T) {
	cfg := Default()
	require.Equal(t, 20, cfg.Data.N)
	require.Equal(t, 15000, cfg.Sampler.Samples)
	require.Greater(t, cfg.Sampler.ProposalWidth, 0.0)
	require.Greater(t, cfg.Prior.Sigma, 0.0)
	require.Less(t, cfg.Sampler.Burnin, cfg.Sampler.Samples)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	raw := `
data:
  observations: [0.5, -0.3, 1.2]
  sigma: 2.0
prior:
  mu: 1.0
  sigma: 0.5
sampler:
  samples: 100
  proposal_width: 0.25
  seed: 7
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, -0.3, 1.2}, cfg.Data.Observations)
	require.Equal(t, 2.0, cfg.Data.Sigma)
	require.Equal(t, 1.0, cfg.Prior.Mu)
	require.Equal(t, 0.5, cfg.Prior.Sigma)
	require.Equal(t, 100, cfg.Sampler.Samples)
	require.Equal(t, 0.25, cfg.Sampler.ProposalWidth)
	require.Equal(t, uint64(7), cfg.Sampler.Seed)
	// Untouched fields keep their defaults.
	require.Equal(t, 500, cfg.Sampler.Burnin)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampler: [not a map"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
