package lib

import (
	"fmt"

	merkletree "github.com/deso-protocol/go-merkle-tree"

	"github.com/datstma/smhash/smhash"
)

// ComputeMerkleRoot hashes each transaction payload and rolls the hashes up
// into a merkle root suitable for the MerkleRoot field of a block header. It
// also returns the leaf hashes in the same order as the payloads so callers
// can build inclusion proofs without recomputing them.
func ComputeMerkleRoot(txnPayloads [][]byte, mode smhash.Mode) (
	_merkle *BlockHash, _txnHashes []*BlockHash, _err error) {

	if len(txnPayloads) == 0 {
		return nil, nil, fmt.Errorf("ComputeMerkleRoot: Block must contain at least one txn")
	}

	// Compute the hashes of all the transactions.
	hashes := [][]byte{}
	for _, payload := range txnPayloads {
		txnHash := smhash.Sum256(payload, mode)
		hashes = append(hashes, txnHash[:])
	}

	merkleTree := merkletree.NewTreeFromHashes(merkletree.Sha256DoubleHash, hashes)

	rootHash := &BlockHash{}
	copy(rootHash[:], merkleTree.Root.GetHash()[:])

	txnHashes := []*BlockHash{}
	for _, leafNode := range merkleTree.Rows[0] {
		currentHash := &BlockHash{}
		copy(currentHash[:], leafNode.GetHash())
		txnHashes = append(txnHashes, currentHash)
	}

	return rootHash, txnHashes, nil
}
