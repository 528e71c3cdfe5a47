package lib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datstma/smhash/smhash"
)

func TestComputeMerkleRoot(t *testing.T) {
	require := require.New(t)

	txnPayloads := [][]byte{
		[]byte("txn one"),
		[]byte("txn two"),
		[]byte("txn three"),
	}

	merkleRoot, txnHashes, err := ComputeMerkleRoot(txnPayloads, smhash.ModeStandard)
	require.NoError(err)
	require.NotNil(merkleRoot)
	require.Len(txnHashes, len(txnPayloads))

	// Leaves are the payload hashes in input order.
	for ii, payload := range txnPayloads {
		expectedLeaf := smhash.Sum256(payload, smhash.ModeStandard)
		require.Equal(NewBlockHash(expectedLeaf[:]), txnHashes[ii])
	}

	// Deterministic across calls.
	merkleRootAgain, _, err := ComputeMerkleRoot(txnPayloads, smhash.ModeStandard)
	require.NoError(err)
	require.True(merkleRoot.IsEqual(merkleRootAgain))

	// Changing any payload changes the root.
	mutatedPayloads := [][]byte{
		[]byte("txn one"),
		[]byte("txn 2"),
		[]byte("txn three"),
	}
	mutatedRoot, _, err := ComputeMerkleRoot(mutatedPayloads, smhash.ModeStandard)
	require.NoError(err)
	require.False(merkleRoot.IsEqual(mutatedRoot))

	// The leaf hash mode matters too.
	fastRoot, _, err := ComputeMerkleRoot(txnPayloads, smhash.ModeFast)
	require.NoError(err)
	require.False(merkleRoot.IsEqual(fastRoot))
}

func TestComputeMerkleRootRejectsEmptyBlock(t *testing.T) {
	_, _, err := ComputeMerkleRoot(nil, smhash.ModeStandard)
	require.Error(t, err)
}

func TestComputeMerkleRootSingleTxn(t *testing.T) {
	require := require.New(t)

	merkleRoot, txnHashes, err := ComputeMerkleRoot([][]byte{[]byte("solo")}, smhash.ModeStandard)
	require.NoError(err)
	require.NotNil(merkleRoot)
	require.Len(txnHashes, 1)
}
