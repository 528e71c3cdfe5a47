package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/datstma/smhash/lib"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Search for a nonce meeting the difficulty target",
	Long: `Mine builds a block header from the flags (or takes one whole via
--header-hex, whose nonce field is ignored) and scans the nonce space for a
digest with at least --difficulty leading zero hex digits.`,
	Run: Mine,
}

func init() {
	SetupMineFlags(mineCmd)
	rootCmd.AddCommand(mineCmd)
}

func Mine(cmd *cobra.Command, args []string) {
	bindCommandFlags(cmd)
	config, err := LoadConfig()
	cobra.CheckErr(err)
	initLogging(config)

	header, err := headerFromConfig(config)
	cobra.CheckErr(err)

	glog.Infof("Mining at difficulty %d with %d threads in %v mode",
		config.Difficulty, config.NumMiningThreads, config.Mode)

	miner := lib.NewMiner(config.NumMiningThreads, config.Mode)
	started := time.Now()
	result, found, err := miner.MineHeader(header, config.Difficulty, config.MaxNonce)
	cobra.CheckErr(err)

	if !found {
		fmt.Printf("No nonce in [0, %d) meets difficulty %d; raise --max-nonce or lower --difficulty\n",
			config.MaxNonce, config.Difficulty)
		return
	}

	header.Nonce = result.Nonce
	headerBytes, err := header.ToBytes()
	cobra.CheckErr(err)

	fmt.Printf("nonce:   %d\n", result.Nonce)
	fmt.Printf("digest:  %v\n", result.Digest)
	fmt.Printf("header:  %x\n", headerBytes)
	fmt.Printf("elapsed: %v\n", time.Since(started))
}

func SetupMineFlags(cmd *cobra.Command) {
	// Hashing
	cmd.PersistentFlags().String("mode", "standard",
		"Hashing mode: fast, standard, or secure. Trades mixing rounds for throughput.")

	// Header
	cmd.PersistentFlags().String("header-hex", "",
		"A full 80-byte header as hex. When set, the field flags below are ignored "+
			"and only the header's nonce field is replaced during the search.")
	cmd.PersistentFlags().Uint32("header-version", 1, "Header version field.")
	cmd.PersistentFlags().String("prev-hash", "",
		"Hex of the previous block hash. Defaults to all zeros, i.e. a genesis header.")
	cmd.PersistentFlags().StringSlice("txn", nil,
		"Transaction payloads to roll into the merkle root. Repeatable. "+
			"When unset the merkle root is all zeros.")
	cmd.PersistentFlags().Uint32("tstamp", 0,
		"Header timestamp in unix seconds. Defaults to the current time.")
	cmd.PersistentFlags().Uint32("bits", 0, "Compact difficulty field carried on the wire.")

	// Mining
	cmd.PersistentFlags().Uint32("difficulty", 2,
		"Required number of leading zero hex digits in the digest.")
	cmd.PersistentFlags().Uint64("max-nonce", uint64(math.MaxUint32)+1,
		"Exclusive upper bound of the nonce search range.")
	cmd.PersistentFlags().Uint64("miner-threads", 0,
		"Number of mining threads. Defaults to the number of CPUs.")

	// Logging
	cmd.PersistentFlags().String("log-dir", "", "Directory glog writes its files to.")
	cmd.PersistentFlags().Uint64("glog-v", 0, "Log verbosity for glog V-style logging.")
	cmd.PersistentFlags().String("glog-vmodule", "",
		"Comma-separated list of pattern=N for per-file glog verbosity.")
}
