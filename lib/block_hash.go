package lib

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

const HashSizeBytes = 32

// BlockHash is a convenient alias for a 256-bit block hash.
type BlockHash [HashSizeBytes]byte

func NewBlockHash(input []byte) *BlockHash {
	blockHash := &BlockHash{}
	copy(blockHash[:], input)
	return blockHash
}

// CopyBytesIntoBlockHash is the checked variant of NewBlockHash: it requires
// exactly HashSizeBytes of input instead of silently truncating or
// zero-filling.
func CopyBytesIntoBlockHash(data []byte) (*BlockHash, error) {
	if len(data) != HashSizeBytes {
		return nil, fmt.Errorf("CopyBytesIntoBlockHash: Got data of size %d for BlockHash of size %d",
			len(data), HashSizeBytes)
	}
	var blockHash BlockHash
	copy(blockHash[:], data)
	return &blockHash, nil
}

// BlockHashFromHex decodes the canonical 64-character lowercase hex form.
func BlockHashFromHex(hexString string) (*BlockHash, error) {
	hashBytes, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, errors.Wrapf(err, "BlockHashFromHex: Problem decoding %v", hexString)
	}
	return CopyBytesIntoBlockHash(hashBytes)
}

func (bh *BlockHash) String() string {
	return hex.EncodeToString(bh[:])
}

func (bh *BlockHash) ToBytes() []byte {
	res := make([]byte, HashSizeBytes)
	copy(res, bh[:])
	return res
}

// IsEqual returns true if target is the same as hash.
func (bh *BlockHash) IsEqual(target *BlockHash) bool {
	if bh == nil && target == nil {
		return true
	}
	if bh == nil || target == nil {
		return false
	}
	return *bh == *target
}

func (bh *BlockHash) Copy() *BlockHash {
	newBlockHash := &BlockHash{}
	copy(newBlockHash[:], bh[:])
	return newBlockHash
}

// LeadingZeroHexDigits counts the leading zero hex digits (nibbles) of the
// hash, most-significant first. This is the proof-of-work difficulty
// convention used throughout: a digest satisfies target t when it renders
// with at least t leading '0' characters.
func (bh *BlockHash) LeadingZeroHexDigits() uint32 {
	count := uint32(0)
	for _, b := range bh {
		if b == 0 {
			count += 2
			continue
		}
		if b>>4 == 0 {
			count++
		}
		break
	}
	return count
}

func HashToBigint(hash *BlockHash) *big.Int {
	return new(big.Int).SetBytes(hash[:])
}

func BigintToHash(bigint *big.Int) (*BlockHash, error) {
	bigintBytes := bigint.Bytes()
	if len(bigintBytes) > HashSizeBytes {
		return nil, fmt.Errorf("BigintToHash: Bigint %v overflows the hash size %d", bigint, HashSizeBytes)
	}
	var blockHash BlockHash
	copy(blockHash[HashSizeBytes-len(bigintBytes):], bigintBytes)
	return &blockHash, nil
}

func LessThan(aa *BlockHash, bb *BlockHash) bool {
	return HashToBigint(aa).Cmp(HashToBigint(bb)) < 0
}
