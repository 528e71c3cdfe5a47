package cmd

import (
	"encoding/hex"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/datstma/smhash/lib"
	"github.com/datstma/smhash/smhash"
)

func TestLoadConfig(t *testing.T) {
	require := require.New(t)
	defer viper.Reset()

	// Empty mode falls back to standard.
	viper.Set("mode", "")
	config, err := LoadConfig()
	require.NoError(err)
	require.Equal(smhash.ModeStandard, config.Mode)
	require.NotZero(config.NumMiningThreads)

	viper.Set("mode", "secure")
	viper.Set("difficulty", 3)
	viper.Set("max-nonce", 5000)
	viper.Set("miner-threads", 2)
	config, err = LoadConfig()
	require.NoError(err)
	require.Equal(smhash.ModeSecure, config.Mode)
	require.Equal(uint32(3), config.Difficulty)
	require.Equal(uint64(5000), config.MaxNonce)
	require.Equal(uint32(2), config.NumMiningThreads)

	viper.Set("mode", "bogus")
	_, err = LoadConfig()
	require.Error(err)
}

func TestHeaderFromConfig(t *testing.T) {
	require := require.New(t)
	defer viper.Reset()

	viper.Set("mode", "standard")
	config, err := LoadConfig()
	require.NoError(err)

	// Field flags assemble a header with a computed merkle root.
	viper.Set("header-version", 1)
	viper.Set("tstamp", 1600000000)
	viper.Set("bits", 0x1d00ffff)
	viper.Set("txn", []string{"txn one", "txn two"})
	header, err := headerFromConfig(config)
	require.NoError(err)
	require.Equal(uint32(1), header.Version)
	require.Equal(uint32(1600000000), header.TstampSecs)
	require.True(header.PrevBlockHash.IsEqual(&lib.BlockHash{}))

	expectedRoot, _, err := lib.ComputeMerkleRoot(
		[][]byte{[]byte("txn one"), []byte("txn two")}, smhash.ModeStandard)
	require.NoError(err)
	require.True(header.MerkleRoot.IsEqual(expectedRoot))

	// A full header-hex wins over the field flags, round-tripping exactly.
	headerBytes, err := header.ToBytes()
	require.NoError(err)
	viper.Set("header-hex", hex.EncodeToString(headerBytes))
	decoded, err := headerFromConfig(config)
	require.NoError(err)
	decodedBytes, err := decoded.ToBytes()
	require.NoError(err)
	require.Equal(headerBytes, decodedBytes)

	// Malformed hex is rejected.
	viper.Set("header-hex", "zz")
	_, err = headerFromConfig(config)
	require.Error(err)
}
