package cmd

import (
	"encoding/hex"
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/datstma/smhash/lib"
	"github.com/datstma/smhash/smhash"
)

// bindCommandFlags points the viper keys at the invoked command's flags.
// Several subcommands declare flags under the same names, so the binding has
// to happen per invocation rather than at registration time.
func bindCommandFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

type Config struct {
	// Hashing
	Mode smhash.Mode

	// Mining
	Difficulty       uint32
	MaxNonce         uint64
	NumMiningThreads uint32

	// Logging
	LogDirectory string
	GlogV        uint64
	GlogVmodule  string
}

func LoadConfig() (*Config, error) {
	config := &Config{}

	// Hashing
	modeString := viper.GetString("mode")
	mode, ok := smhash.ParseMode(modeString)
	if !ok {
		return nil, fmt.Errorf("LoadConfig: Unrecognized mode %q; want fast, standard, or secure", modeString)
	}
	config.Mode = mode

	// Mining
	config.Difficulty = viper.GetUint32("difficulty")
	config.MaxNonce = viper.GetUint64("max-nonce")
	config.NumMiningThreads = uint32(viper.GetUint64("miner-threads"))
	if config.NumMiningThreads == 0 {
		config.NumMiningThreads = uint32(runtime.NumCPU())
	}

	// Logging
	config.LogDirectory = viper.GetString("log-dir")
	config.GlogV = viper.GetUint64("glog-v")
	config.GlogVmodule = viper.GetString("glog-vmodule")

	return config, nil
}

func initLogging(config *Config) {
	flag.Set("log_dir", config.LogDirectory)
	flag.Set("v", fmt.Sprintf("%d", config.GlogV))
	flag.Set("vmodule", config.GlogVmodule)
	flag.Set("alsologtostderr", "true")
	flag.Parse()
	glog.CopyStandardLogTo("INFO")
}

// headerFromConfig builds the header to mine or verify. A full header-hex
// takes precedence; otherwise the header is assembled from individual field
// flags, with the merkle root computed from any --txn payloads.
func headerFromConfig(config *Config) (*lib.MsgBlockHeader, error) {
	if headerHex := viper.GetString("header-hex"); headerHex != "" {
		headerBytes, err := hex.DecodeString(headerHex)
		if err != nil {
			return nil, errors.Wrapf(err, "headerFromConfig: Problem decoding header-hex")
		}
		header := &lib.MsgBlockHeader{}
		if err := header.FromBytes(headerBytes); err != nil {
			return nil, errors.Wrapf(err, "headerFromConfig")
		}
		return header, nil
	}

	prevBlockHash := &lib.BlockHash{}
	if prevHex := viper.GetString("prev-hash"); prevHex != "" {
		decoded, err := lib.BlockHashFromHex(prevHex)
		if err != nil {
			return nil, errors.Wrapf(err, "headerFromConfig: Problem decoding prev-hash")
		}
		prevBlockHash = decoded
	}

	merkleRoot := &lib.BlockHash{}
	if txnStrings := viper.GetStringSlice("txn"); len(txnStrings) > 0 {
		txnPayloads := make([][]byte, 0, len(txnStrings))
		for _, txnString := range txnStrings {
			txnPayloads = append(txnPayloads, []byte(txnString))
		}
		computedRoot, _, err := lib.ComputeMerkleRoot(txnPayloads, config.Mode)
		if err != nil {
			return nil, errors.Wrapf(err, "headerFromConfig: Problem computing merkle root")
		}
		merkleRoot = computedRoot
	}

	tstampSecs := viper.GetUint32("tstamp")
	if tstampSecs == 0 {
		tstampSecs = uint32(time.Now().Unix())
	}

	return &lib.MsgBlockHeader{
		Version:       viper.GetUint32("header-version"),
		PrevBlockHash: prevBlockHash,
		MerkleRoot:    merkleRoot,
		TstampSecs:    tstampSecs,
		Bits:          viper.GetUint32("bits"),
	}, nil
}
