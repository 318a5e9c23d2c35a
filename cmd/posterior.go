package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mhchain/params"
)

var posteriorCmd = &cobra.Command{
	Use:   "posterior",
	Short: "Print the closed-form conjugate posterior for the configured data",
	Long: `The Gaussian-Gaussian model has a known analytic posterior for the
mean. This prints it for the same data a sample run would use, as a reference
to compare chains against.`,
	RunE: runPosterior,
}

func init() {
	def := params.Default()
	f := posteriorCmd.Flags()
	f.Uint64("seed", def.Sampler.Seed, "RNG seed for data generation")
	f.Int("n", def.Data.N, "synthetic observations to generate")
	f.Float64("data-mu", def.Data.Mu, "true mean of the synthetic data")
	f.Float64("data-sigma", def.Data.Sigma, "known sd of the likelihood (and of synthetic data)")
	f.Float64("prior-mu", def.Prior.Mu, "prior mean")
	f.Float64("prior-sigma", def.Prior.Sigma, "prior sd")
	rootCmd.AddCommand(posteriorCmd)
}

func runPosterior(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)

	m := buildModel(cfg)
	if err := m.Validate(); err != nil {
		return err
	}
	mean, sd := m.Conjugate()

	logger.Info("analytic posterior",
		zap.Int("n", len(m.Data)),
		zap.Float64("mean", mean),
		zap.Float64("sd", sd),
	)
	fmt.Printf("analytic posterior: N(%.4f, %.4f)\n", mean, sd)
	return nil
}
