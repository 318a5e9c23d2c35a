// Package cmd wires the sampler into a CLI: `sample` runs a chain and
// summarizes the posterior, `posterior` prints the closed-form answer the
// chain should agree with.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mhchain/params"
)

var (
	logger  *zap.Logger
	cfgPath string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "mhchain",
	Short: "Metropolis-Hastings sampling for the mean of a normal model",
	Long: `mhchain estimates the posterior of an unknown normal mean with a
single-site Metropolis-Hastings chain. Data is synthetic by default; supply
observations through a YAML run config to sample a posterior for real data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if quiet {
			logger = zap.NewNop()
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func Execute() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML run config; flags override its values")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress log output")
}

func loadRunConfig() (params.RunConfig, error) {
	if cfgPath == "" {
		return params.Default(), nil
	}
	return params.Load(cfgPath)
}

// applyFlags overlays explicitly set flags on top of the loaded config.
// Flags a command does not define are simply never "changed".
func applyFlags(cmd *cobra.Command, cfg *params.RunConfig) {
	f := cmd.Flags()
	if f.Changed("samples") {
		cfg.Sampler.Samples, _ = f.GetInt("samples")
	}
	if f.Changed("mu-init") {
		cfg.Sampler.MuInit, _ = f.GetFloat64("mu-init")
	}
	if f.Changed("proposal-width") {
		cfg.Sampler.ProposalWidth, _ = f.GetFloat64("proposal-width")
	}
	if f.Changed("seed") {
		cfg.Sampler.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("burnin") {
		cfg.Sampler.Burnin, _ = f.GetInt("burnin")
	}
	if f.Changed("n") {
		cfg.Data.N, _ = f.GetInt("n")
	}
	if f.Changed("data-mu") {
		cfg.Data.Mu, _ = f.GetFloat64("data-mu")
	}
	if f.Changed("data-sigma") {
		cfg.Data.Sigma, _ = f.GetFloat64("data-sigma")
	}
	if f.Changed("prior-mu") {
		cfg.Prior.Mu, _ = f.GetFloat64("prior-mu")
	}
	if f.Changed("prior-sigma") {
		cfg.Prior.Sigma, _ = f.GetFloat64("prior-sigma")
	}
}
