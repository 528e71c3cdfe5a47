// Package smhash implements a 256-bit mixing hash designed for proof-of-work
// block mining. It is deliberately not a general-purpose cryptographic hash:
// the round schedule trades diffusion strength for raw throughput, and a
// specialized nonce path lets a miner re-derive a candidate digest without
// re-absorbing the message it already hashed. Anything that needs a vetted
// primitive should use sha256 or sha3 instead; this exists so that mining
// loops can run an order of magnitude hotter than they would on either.
package smhash

import (
	"encoding/binary"
	"encoding/hex"
)

const (
	// BlockSize is the absorption block size in bytes.
	BlockSize = 64

	// Size is the digest size in bytes.
	Size = 32

	stateWords = 4
)

// Mode selects the per-block round count, trading hashing speed for
// diffusion strength. It is fixed for the lifetime of an Engine.
type Mode uint32

const (
	// ModeFast runs the minimum rounds for basic mixing. Meant for the
	// mining hot loop where throughput dominates.
	ModeFast Mode = iota
	// ModeStandard is the balanced default.
	ModeStandard
	// ModeSecure runs extra rounds for operations worth the slowdown.
	ModeSecure
)

// modeRounds maps each mode to its per-block mixing round count.
var modeRounds = [...]int{
	ModeFast:     2,
	ModeStandard: 3,
	ModeSecure:   4,
}

// Rounds returns the number of mixing rounds applied per absorbed block.
// Unrecognized modes fall back to the standard round count rather than
// erroring, so a Mode read from config can never produce a broken engine.
func (mode Mode) Rounds() int {
	if int(mode) >= len(modeRounds) {
		return modeRounds[ModeStandard]
	}
	return modeRounds[mode]
}

func (mode Mode) String() string {
	switch mode {
	case ModeFast:
		return "fast"
	case ModeStandard:
		return "standard"
	case ModeSecure:
		return "secure"
	}
	return "standard"
}

// ParseMode maps the user-facing mode names onto Mode values.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "fast":
		return ModeFast, true
	case "standard", "":
		return ModeStandard, true
	case "secure":
		return ModeSecure, true
	}
	return ModeStandard, false
}

// initializationConstants seed the four state words. They are the fractional
// bits of sqrt(2) and sqrt(3), the same nothing-up-my-sleeve values sha256
// uses for its first four IV words. Every digest this module produces is
// relative to these; changing them forks the hash.
var initializationConstants = [stateWords]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
}

// State is the 256-bit internal hash state: four 64-bit words. It is a value
// type on purpose; handing a State to another goroutine or to FastNonceMix
// copies it, which is what keeps a shared mining base state immutable.
type State [stateWords]uint64

// Serialize renders the state as a digest: most-significant word first,
// each word big-endian. No further mixing happens here; all diffusion is
// done during absorption.
func (s State) Serialize() (digest [Size]byte) {
	binary.BigEndian.PutUint64(digest[0:8], s[0])
	binary.BigEndian.PutUint64(digest[8:16], s[1])
	binary.BigEndian.PutUint64(digest[16:24], s[2])
	binary.BigEndian.PutUint64(digest[24:32], s[3])
	return digest
}

// Sum256 hashes data through the padded byte path and returns the digest.
func Sum256(data []byte, mode Mode) [Size]byte {
	engine := NewEngine(mode)
	_, _ = engine.Write(data)
	digest, _ := engine.Finalize()
	return digest
}

// SumWithNonce hashes data through the padded byte path and then folds the
// nonce in through the fast nonce path. This is the canonical "message plus
// nonce" digest used for block headers: the miner computes the base state
// once and hot-loops FastNonceMix, while a verifier calls this from raw
// bytes and lands on the identical digest.
func SumWithNonce(data []byte, nonce uint64, mode Mode) [Size]byte {
	engine := NewEngine(mode)
	_, _ = engine.Write(data)
	baseState, _ := engine.FinalizeState()
	return FastNonceMix(baseState, nonce).Serialize()
}

// HashBytes returns the canonical display form of Sum256: a 64-character
// lowercase hex string.
func HashBytes(data []byte, mode Mode) string {
	digest := Sum256(data, mode)
	return hex.EncodeToString(digest[:])
}

// HashString hashes the UTF-8 bytes of s.
func HashString(s string, mode Mode) string {
	return HashBytes([]byte(s), mode)
}
