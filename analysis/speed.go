package analysis

import (
	"crypto/sha256"
	"math/rand"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/datstma/smhash/smhash"
)

// SpeedResult is one hash function's throughput over the sampled workload.
type SpeedResult struct {
	Name     string
	NsPerOp  float64
	MBPerSec float64
}

// SpeedComparison times the three hash modes against SHA-256 and SHA3-256
// on the same input. Wall-clock measurement, so the numbers are indicative
// rather than benchmark-grade; the bench command exists for anyone who
// wants proper testing.B statistics.
func SpeedComparison(inputSize int, iterations int, seed int64) []SpeedResult {
	rng := rand.New(rand.NewSource(seed))
	input := make([]byte, inputSize)
	rng.Read(input)

	hashers := []struct {
		name string
		hash func([]byte)
	}{
		{"smhash-fast", func(data []byte) { smhash.Sum256(data, smhash.ModeFast) }},
		{"smhash-standard", func(data []byte) { smhash.Sum256(data, smhash.ModeStandard) }},
		{"smhash-secure", func(data []byte) { smhash.Sum256(data, smhash.ModeSecure) }},
		{"sha256", func(data []byte) { sha256.Sum256(data) }},
		{"sha3-256", func(data []byte) { sha3.Sum256(data) }},
	}

	results := make([]SpeedResult, 0, len(hashers))
	for _, hasher := range hashers {
		start := time.Now()
		for ii := 0; ii < iterations; ii++ {
			hasher.hash(input)
		}
		elapsed := time.Since(start)

		nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)
		results = append(results, SpeedResult{
			Name:     hasher.name,
			NsPerOp:  nsPerOp,
			MBPerSec: float64(inputSize) / nsPerOp * 1e3,
		})
	}
	return results
}

// NonceScanRate measures the mining hot loop in nonce attempts per second:
// one fast nonce fold plus digest serialization per candidate, over a base
// state absorbed from a random header-sized prefix. The fast path does not
// re-run the absorb rounds, so the rate is expected to be mode-independent.
func NonceScanRate(iterations int, mode smhash.Mode, seed int64) float64 {
	rng := rand.New(rand.NewSource(seed))
	prefix := make([]byte, 76)
	rng.Read(prefix)

	engine := smhash.NewEngine(mode)
	_, _ = engine.Write(prefix)
	baseState, _ := engine.FinalizeState()

	var sink byte
	start := time.Now()
	for ii := 0; ii < iterations; ii++ {
		digest := smhash.FastNonceMix(baseState, uint64(ii)).Serialize()
		sink ^= digest[0]
	}
	elapsed := time.Since(start)
	_ = sink

	return float64(iterations) / elapsed.Seconds()
}
