package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datstma/smhash/lib"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Recompute a header digest and check it against an expected value",
	Run:   Verify,
}

func init() {
	SetupVerifyFlags(verifyCmd)
	rootCmd.AddCommand(verifyCmd)
}

func Verify(cmd *cobra.Command, args []string) {
	bindCommandFlags(cmd)
	config, err := LoadConfig()
	cobra.CheckErr(err)
	initLogging(config)

	header, err := headerFromConfig(config)
	cobra.CheckErr(err)

	expectedDigest, err := lib.BlockHashFromHex(viper.GetString("digest"))
	cobra.CheckErr(err)
	nonce := viper.GetUint32("nonce")

	valid, err := lib.VerifyBlockHeader(header, nonce, expectedDigest, config.Mode)
	cobra.CheckErr(err)

	if !valid {
		computedDigest, err := lib.ProofOfWorkHash(header, nonce, config.Mode)
		cobra.CheckErr(err)
		fmt.Printf("INVALID: header hashes to %v, not %v\n", computedDigest, expectedDigest)
		return
	}
	fmt.Printf("VALID: nonce %d produces %v with %d leading zero hex digits\n",
		nonce, expectedDigest, expectedDigest.LeadingZeroHexDigits())
}

func SetupVerifyFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("mode", "standard",
		"Hashing mode: fast, standard, or secure.")
	cmd.PersistentFlags().String("header-hex", "",
		"A full 80-byte header as hex. The nonce field is replaced by --nonce.")
	cmd.PersistentFlags().Uint32("nonce", 0, "Nonce claimed to satisfy the target.")
	cmd.PersistentFlags().String("digest", "", "Expected digest as 64 hex characters.")

	cmd.PersistentFlags().String("log-dir", "", "Directory glog writes its files to.")
	cmd.PersistentFlags().Uint64("glog-v", 0, "Log verbosity for glog V-style logging.")
	cmd.PersistentFlags().String("glog-vmodule", "",
		"Comma-separated list of pattern=N for per-file glog verbosity.")
}
