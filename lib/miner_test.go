package lib

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/datstma/smhash/smhash"
)

func TestMineLiveness(t *testing.T) {
	require := require.New(t)

	// Target 0 accepts every digest, so the very first nonce wins.
	result, found, err := Mine(testBlockHeader(t), 0, 1, smhash.ModeStandard)
	require.NoError(err)
	require.True(found)
	require.Equal(uint32(0), result.Nonce)
}

func TestMineKnownVectors(t *testing.T) {
	require := require.New(t)

	header := testBlockHeader(t)
	miningVectors := []struct {
		mode   smhash.Mode
		target uint32
		nonce  uint32
		digest string
	}{
		{smhash.ModeStandard, 1, 2560, "03d5e865a83d7b083fa7756aacfc4d006a1278e894170f449495680d9dc37c44"},
		{smhash.ModeStandard, 2, 2656, "0015e81da83e7b083c677512ac874d0c6a1278e894170f449495680d9dc37c44"},
		{smhash.ModeStandard, 3, 2658, "0001e81f283e6b087c7375102c85dd0c6a1278e894170f449495680d9dc37c44"},
		{smhash.ModeFast, 1, 3584, "0bcd8ee79c829990f63e2ec380c4ee7aeb627cbfc590301f504cc71496b41628"},
		{smhash.ModeFast, 2, 3872, "008d8f8f9c8b9990fd7e2fab81a5ee5eeb627cbfc590301f504cc71496b41628"},
	}
	for _, vector := range miningVectors {
		result, found, err := Mine(header, vector.target, 10000, vector.mode)
		require.NoError(err)
		require.True(found, "mode %v target %d", vector.mode, vector.target)
		require.Equal(vector.nonce, result.Nonce, "mode %v target %d", vector.mode, vector.target)
		require.Equal(vector.digest, result.Digest.String())
		require.GreaterOrEqual(result.Digest.LeadingZeroHexDigits(), vector.target)

		valid, err := VerifyBlockHeader(header, result.Nonce, result.Digest, vector.mode)
		require.NoError(err)
		require.True(valid)
	}
}

func TestMineExhaustion(t *testing.T) {
	require := require.New(t)

	header := testBlockHeader(t)

	// An all-zero digest is unreachable in one attempt; exhausting the
	// range reports not-found without an error.
	result, found, err := Mine(header, 64, 1, smhash.ModeStandard)
	require.NoError(err)
	require.False(found)
	require.Nil(result)

	// An empty nonce range trivially finds nothing.
	result, found, err = Mine(header, 0, 0, smhash.ModeStandard)
	require.NoError(err)
	require.False(found)
	require.Nil(result)
}

func TestMinerParallel(t *testing.T) {
	require := require.New(t)

	header := testBlockHeader(t)
	miner := NewMiner(4, smhash.ModeStandard)

	result, found, err := miner.MineHeader(header, 2, 100000)
	require.NoError(err)
	require.True(found)
	require.GreaterOrEqual(result.Digest.LeadingZeroHexDigits(), uint32(2))

	valid, err := VerifyBlockHeader(header, result.Nonce, result.Digest, smhash.ModeStandard)
	require.NoError(err)
	require.True(valid)
}

func TestMinerStop(t *testing.T) {
	require := require.New(t)

	header := testBlockHeader(t)
	miner := NewMiner(2, smhash.ModeFast)

	type mineOutcome struct {
		result *MiningResult
		found  bool
		err    error
	}
	outcomes := make(chan mineOutcome, 1)
	go func() {
		result, found, err := miner.MineHeader(header, 64, uint64(math.MaxUint32))
		outcomes <- mineOutcome{result, found, err}
	}()

	time.Sleep(50 * time.Millisecond)
	miner.Stop()

	select {
	case outcome := <-outcomes:
		require.NoError(outcome.err)
		require.False(outcome.found)
		require.Nil(outcome.result)
	case <-time.After(10 * time.Second):
		t.Fatal("miner did not stop")
	}
}
