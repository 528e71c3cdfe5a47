package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datstma/smhash/analysis"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare hashing throughput against SHA-256 and SHA3-256",
	Run:   Bench,
}

func init() {
	SetupBenchFlags(benchCmd)
	rootCmd.AddCommand(benchCmd)
}

func Bench(cmd *cobra.Command, args []string) {
	bindCommandFlags(cmd)
	config, err := LoadConfig()
	cobra.CheckErr(err)
	initLogging(config)

	inputSize := viper.GetInt("input-size")
	iterations := viper.GetInt("iterations")
	seed := viper.GetInt64("seed")

	fmt.Printf("%d iterations on %d-byte inputs:\n", iterations, inputSize)
	for _, result := range analysis.SpeedComparison(inputSize, iterations, seed) {
		fmt.Printf("  %-16s %10.1f ns/op %10.1f MB/s\n", result.Name, result.NsPerOp, result.MBPerSec)
	}

	attemptsPerSec := analysis.NonceScanRate(iterations, config.Mode, seed)
	fmt.Printf("nonce scan (%v mode): %.2f M attempts/s\n", config.Mode, attemptsPerSec/1e6)
}

func SetupBenchFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("mode", "standard",
		"Hashing mode: fast, standard, or secure. All three modes are timed regardless; "+
			"this only affects the shared config load.")
	cmd.PersistentFlags().Int("input-size", 1024, "Input size in bytes per hash call.")
	cmd.PersistentFlags().Int("iterations", 100000, "Number of hash calls per function.")
	cmd.PersistentFlags().Int64("seed", 1, "Seed for generating the input.")

	cmd.PersistentFlags().String("log-dir", "", "Directory glog writes its files to.")
	cmd.PersistentFlags().Uint64("glog-v", 0, "Log verbosity for glog V-style logging.")
	cmd.PersistentFlags().String("glog-vmodule", "",
		"Comma-separated list of pattern=N for per-file glog verbosity.")
}
