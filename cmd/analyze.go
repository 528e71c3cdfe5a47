package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datstma/smhash/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Measure avalanche, distribution, and collision behavior",
	Long: `Analyze runs the statistical quality experiments on the configured
mode: single-bit-flip avalanche, digest byte distribution, and a collision
scan over distinct inputs.`,
	Run: Analyze,
}

func init() {
	SetupAnalyzeFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func Analyze(cmd *cobra.Command, args []string) {
	bindCommandFlags(cmd)
	config, err := LoadConfig()
	cobra.CheckErr(err)
	initLogging(config)

	samples := viper.GetInt("samples")
	inputSize := viper.GetInt("input-size")
	seed := viper.GetInt64("seed")

	avalanche := analysis.Avalanche(samples, inputSize, config.Mode, seed)
	fmt.Printf("avalanche (%d samples, %d-byte inputs, %v mode):\n",
		avalanche.Samples, avalanche.InputSize, config.Mode)
	fmt.Printf("  lane fraction:    %.4f (ideal 0.5 within the reachable half)\n", avalanche.LaneFraction)
	fmt.Printf("  overall fraction: %.4f (capped near 0.25 by the independent word pairs)\n", avalanche.OverallFraction)

	distribution := analysis.Distribution(samples, config.Mode, seed)
	fmt.Printf("distribution (%d samples):\n", distribution.Samples)
	fmt.Printf("  max byte-mean deviation from 127.5: %.4f\n", distribution.MaxDeviation)

	collisions := analysis.CollisionScan(samples, config.Mode, seed)
	fmt.Printf("collisions (%d distinct inputs): %d\n", collisions.Samples, collisions.Collisions)
}

func SetupAnalyzeFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("mode", "standard",
		"Hashing mode: fast, standard, or secure.")
	cmd.PersistentFlags().Int("samples", 20000, "Number of samples per experiment.")
	cmd.PersistentFlags().Int("input-size", 64, "Input size in bytes for the avalanche experiment.")
	cmd.PersistentFlags().Int64("seed", 1, "Seed for the experiment RNG. Fixed seeds reproduce exactly.")

	cmd.PersistentFlags().String("log-dir", "", "Directory glog writes its files to.")
	cmd.PersistentFlags().Uint64("glog-v", 0, "Log verbosity for glog V-style logging.")
	cmd.PersistentFlags().String("glog-vmodule", "",
		"Comma-separated list of pattern=N for per-file glog verbosity.")
}
