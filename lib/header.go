package lib

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Note that the header fields are encoded at fixed widths rather than as
// varints. These bytes are what gets hashed to produce a block hash, and
// variable-width encodings would incentivize miners to keep field values
// short, which corrupts their actual utility.
//
// Wire layout, 80 bytes total, integer fields little-endian:
//
//	Version:4 | PrevBlockHash:32 | MerkleRoot:32 | TstampSecs:4 | Bits:4 | Nonce:4
const (
	HeaderSizeBytes = 80

	// HeaderNoncePosition is the byte offset of the Nonce field: everything
	// before it is the nonce-less prefix the miner absorbs once per
	// template.
	HeaderNoncePosition = 76
)

// MsgBlockHeader is the fixed-layout block header that gets hashed during
// mining.
type MsgBlockHeader struct {
	// Note this is encoded as a fixed-width uint32 rather than a uvarint.
	Version uint32

	// Hash of the previous block in the chain.
	PrevBlockHash *BlockHash

	// The merkle root of all the transactions contained within the block.
	MerkleRoot *BlockHash

	// The unix timestamp (in seconds) specifying when this block was mined.
	TstampSecs uint32

	// The compact difficulty encoding carried on the wire. The miner itself
	// takes its target as a leading-zero count; Bits rides along for
	// compatibility with header layouts that encode difficulty this way.
	Bits uint32

	// The nonce that is varied by miners in order to produce valid blocks.
	Nonce uint32
}

// NewMsgBlockHeader builds a header from raw field bytes, rejecting
// anything outside the declared field widths.
func NewMsgBlockHeader(version uint32, prevBlockHash []byte, merkleRoot []byte,
	tstampSecs uint32, bits uint32, nonce uint32) (*MsgBlockHeader, error) {

	prevHash, err := CopyBytesIntoBlockHash(prevBlockHash)
	if err != nil {
		return nil, errors.Wrapf(err, "NewMsgBlockHeader: Problem with PrevBlockHash")
	}
	merkle, err := CopyBytesIntoBlockHash(merkleRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "NewMsgBlockHeader: Problem with MerkleRoot")
	}

	return &MsgBlockHeader{
		Version:       version,
		PrevBlockHash: prevHash,
		MerkleRoot:    merkle,
		TstampSecs:    tstampSecs,
		Bits:          bits,
		Nonce:         nonce,
	}, nil
}

// ToBytes serializes the header into the fixed 80-byte wire layout. Nil
// hashes encode as all zeros, which is what a genesis header carries.
func (msg *MsgBlockHeader) ToBytes() ([]byte, error) {
	retBytes := make([]byte, 0, HeaderSizeBytes)

	// Version
	{
		scratchBytes := [4]byte{}
		binary.LittleEndian.PutUint32(scratchBytes[:], msg.Version)
		retBytes = append(retBytes, scratchBytes[:]...)
	}

	// PrevBlockHash
	prevBlockHash := msg.PrevBlockHash
	if prevBlockHash == nil {
		prevBlockHash = &BlockHash{}
	}
	retBytes = append(retBytes, prevBlockHash[:]...)

	// MerkleRoot
	merkleRoot := msg.MerkleRoot
	if merkleRoot == nil {
		merkleRoot = &BlockHash{}
	}
	retBytes = append(retBytes, merkleRoot[:]...)

	// TstampSecs
	{
		scratchBytes := [4]byte{}
		binary.LittleEndian.PutUint32(scratchBytes[:], msg.TstampSecs)
		retBytes = append(retBytes, scratchBytes[:]...)
	}

	// Bits
	{
		scratchBytes := [4]byte{}
		binary.LittleEndian.PutUint32(scratchBytes[:], msg.Bits)
		retBytes = append(retBytes, scratchBytes[:]...)
	}

	// Nonce
	{
		scratchBytes := [4]byte{}
		binary.LittleEndian.PutUint32(scratchBytes[:], msg.Nonce)
		retBytes = append(retBytes, scratchBytes[:]...)
	}

	return retBytes, nil
}

// FromBytes deserializes an 80-byte header. Trailing garbage is rejected the
// same way a short buffer is; the layout is fixed-width with no extensions.
func (msg *MsgBlockHeader) FromBytes(data []byte) error {
	if len(data) != HeaderSizeBytes {
		return errors.Errorf("MsgBlockHeader.FromBytes: Got %d bytes for header of size %d",
			len(data), HeaderSizeBytes)
	}
	rr := bytes.NewReader(data)
	retHeader := &MsgBlockHeader{
		PrevBlockHash: &BlockHash{},
		MerkleRoot:    &BlockHash{},
	}

	// Version
	{
		scratchBytes := [4]byte{}
		if _, err := io.ReadFull(rr, scratchBytes[:]); err != nil {
			return errors.Wrapf(err, "MsgBlockHeader.FromBytes: Problem decoding Version")
		}
		retHeader.Version = binary.LittleEndian.Uint32(scratchBytes[:])
	}

	// PrevBlockHash
	if _, err := io.ReadFull(rr, retHeader.PrevBlockHash[:]); err != nil {
		return errors.Wrapf(err, "MsgBlockHeader.FromBytes: Problem decoding PrevBlockHash")
	}

	// MerkleRoot
	if _, err := io.ReadFull(rr, retHeader.MerkleRoot[:]); err != nil {
		return errors.Wrapf(err, "MsgBlockHeader.FromBytes: Problem decoding MerkleRoot")
	}

	// TstampSecs
	{
		scratchBytes := [4]byte{}
		if _, err := io.ReadFull(rr, scratchBytes[:]); err != nil {
			return errors.Wrapf(err, "MsgBlockHeader.FromBytes: Problem decoding TstampSecs")
		}
		retHeader.TstampSecs = binary.LittleEndian.Uint32(scratchBytes[:])
	}

	// Bits
	{
		scratchBytes := [4]byte{}
		if _, err := io.ReadFull(rr, scratchBytes[:]); err != nil {
			return errors.Wrapf(err, "MsgBlockHeader.FromBytes: Problem decoding Bits")
		}
		retHeader.Bits = binary.LittleEndian.Uint32(scratchBytes[:])
	}

	// Nonce
	{
		scratchBytes := [4]byte{}
		if _, err := io.ReadFull(rr, scratchBytes[:]); err != nil {
			return errors.Wrapf(err, "MsgBlockHeader.FromBytes: Problem decoding Nonce")
		}
		retHeader.Nonce = binary.LittleEndian.Uint32(scratchBytes[:])
	}

	*msg = *retHeader
	return nil
}

// NoncelessPrefix serializes the header and strips the trailing nonce
// field. These 76 bytes are what the miner absorbs once to form the base
// state; the nonce itself only ever enters through the fast nonce path.
func (msg *MsgBlockHeader) NoncelessPrefix() ([]byte, error) {
	headerBytes, err := msg.ToBytes()
	if err != nil {
		return nil, errors.Wrapf(err, "NoncelessPrefix")
	}
	return headerBytes[:HeaderNoncePosition], nil
}
