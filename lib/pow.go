package lib

import (
	"github.com/pkg/errors"

	"github.com/datstma/smhash/collections"
	"github.com/datstma/smhash/smhash"
)

// ProofOfWorkHash computes the canonical digest of a block header under the
// given mode. The digest is defined in two stages: the 76-byte nonce-less
// prefix goes through the ordinary padded absorb path, and the nonce is then
// folded in through the fast nonce path. Defining the hash this way is what
// lets the miner cache stage one per template and hot-loop stage two, while
// a verifier recomputes both stages from raw bytes and lands on the
// identical digest with no pre-shared state.
func ProofOfWorkHash(header *MsgBlockHeader, nonce uint32, mode smhash.Mode) (*BlockHash, error) {
	prefix, err := header.NoncelessPrefix()
	if err != nil {
		return nil, errors.Wrapf(err, "ProofOfWorkHash")
	}
	digest := smhash.SumWithNonce(prefix, uint64(nonce), mode)
	return NewBlockHash(digest[:]), nil
}

// HeaderBaseState absorbs the header's nonce-less prefix and returns the
// finalized state words. The result is immutable from the caller's point of
// view: FastNonceMix copies it per candidate, so one base state can be
// shared read-only across any number of mining workers.
func HeaderBaseState(header *MsgBlockHeader, mode smhash.Mode) (smhash.State, error) {
	prefix, err := header.NoncelessPrefix()
	if err != nil {
		return smhash.State{}, errors.Wrapf(err, "HeaderBaseState")
	}
	engine := smhash.NewEngine(mode)
	if _, err := engine.Write(prefix); err != nil {
		return smhash.State{}, errors.Wrapf(err, "HeaderBaseState: Problem absorbing prefix")
	}
	baseState, err := engine.FinalizeState()
	if err != nil {
		return smhash.State{}, errors.Wrapf(err, "HeaderBaseState: Problem finalizing")
	}
	return baseState, nil
}

// CheckDifficultyTarget returns true when the digest carries at least
// target leading zero hex digits.
func CheckDifficultyTarget(hash *BlockHash, target uint32) bool {
	return hash.LeadingZeroHexDigits() >= target
}

// VerifyBlockHeader recomputes the header digest for the given nonce through
// the full hashing path and compares it against expectedDigest. A mismatch
// is an ordinary false, never an error; the only error surface is header
// serialization itself.
func VerifyBlockHeader(header *MsgBlockHeader, nonce uint32,
	expectedDigest *BlockHash, mode smhash.Mode) (bool, error) {

	computedDigest, err := ProofOfWorkHash(header, nonce, mode)
	if err != nil {
		return false, errors.Wrapf(err, "VerifyBlockHeader")
	}
	return computedDigest.IsEqual(expectedDigest), nil
}

// verifyCacheKey identifies one verification: full header bytes (nonce
// included) plus the mode. Comparable so it can key the LRU directly.
type verifyCacheKey struct {
	headerBytes [HeaderSizeBytes]byte
	mode        smhash.Mode
}

// Verifier is a VerifyBlockHeader wrapper that memoizes recomputed digests.
// Block relay tends to verify the same header several times (announcement,
// request, store), and the full absorb path is the expensive part, so a
// small LRU in front of it pays for itself.
type Verifier struct {
	mode        smhash.Mode
	digestCache *collections.LruCache[verifyCacheKey, BlockHash]
}

func NewVerifier(mode smhash.Mode, cacheSize int) (*Verifier, error) {
	digestCache, err := collections.NewLruCache[verifyCacheKey, BlockHash](cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "NewVerifier: Problem creating digest cache")
	}
	return &Verifier{
		mode:        mode,
		digestCache: digestCache,
	}, nil
}

// VerifyBlockHeader behaves like the package-level function but serves
// repeated verifications of the same header from the cache.
func (verifier *Verifier) VerifyBlockHeader(header *MsgBlockHeader, nonce uint32,
	expectedDigest *BlockHash) (bool, error) {

	headerWithNonce := *header
	headerWithNonce.Nonce = nonce
	headerBytes, err := headerWithNonce.ToBytes()
	if err != nil {
		return false, errors.Wrapf(err, "Verifier.VerifyBlockHeader")
	}

	cacheKey := verifyCacheKey{mode: verifier.mode}
	copy(cacheKey.headerBytes[:], headerBytes)

	if cachedDigest, exists := verifier.digestCache.Get(cacheKey); exists {
		return cachedDigest.IsEqual(expectedDigest), nil
	}

	computedDigest, err := ProofOfWorkHash(header, nonce, verifier.mode)
	if err != nil {
		return false, errors.Wrapf(err, "Verifier.VerifyBlockHeader")
	}
	verifier.digestCache.Put(cacheKey, *computedDigest)

	return computedDigest.IsEqual(expectedDigest), nil
}
