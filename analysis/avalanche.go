// Package analysis contains empirical quality measurements for the hash:
// avalanche behavior, output byte distribution, collision scanning, and a
// throughput comparison against standard primitives. Nothing here runs in
// the block-processing path; the package backs the analyze and bench CLI
// commands and the regression tests that pin the hash's statistical
// properties.
package analysis

import (
	"math/bits"
	"math/rand"

	"github.com/golang/glog"

	"github.com/datstma/smhash/smhash"
)

// AvalancheReport summarizes a single-bit-flip diffusion experiment.
//
// The mixing rounds operate on two independent word pairs, so a flipped
// input bit can only ever spread through half of the 256-bit digest. Both
// fractions are reported: OverallFraction is flipped bits over the full
// digest width and sits near 0.24, LaneFraction restricts the denominator
// to the 128-bit half the flipped bit feeds and is the figure that should
// track the ideal 0.5.
type AvalancheReport struct {
	Samples         int
	InputSize       int
	OverallFraction float64
	LaneFraction    float64
}

// Avalanche flips one random bit of a random input per sample and measures
// how many digest bits change. Deterministic for a fixed seed.
func Avalanche(samples int, inputSize int, mode smhash.Mode, seed int64) AvalancheReport {
	rng := rand.New(rand.NewSource(seed))

	overallFlipped := 0
	laneFlipped := 0

	for ii := 0; ii < samples; ii++ {
		input := make([]byte, inputSize)
		rng.Read(input)

		baseline := smhash.Sum256(input, mode)

		bitIndex := rng.Intn(inputSize * 8)
		input[bitIndex/8] ^= 1 << uint(bitIndex%8)
		flipped := smhash.Sum256(input, mode)

		// The flipped byte folds into state word (wordIndex mod 4). Words 0
		// and 1 mix together and land in digest bytes [0:16); words 2 and 3
		// land in [16:32).
		wordIndex := (bitIndex / 8 % smhash.BlockSize) / 8
		laneStart := 0
		if wordIndex%4 >= 2 {
			laneStart = 16
		}

		for jj := 0; jj < smhash.Size; jj++ {
			diff := bits.OnesCount8(baseline[jj] ^ flipped[jj])
			overallFlipped += diff
			if jj >= laneStart && jj < laneStart+16 {
				laneFlipped += diff
			}
		}
	}

	report := AvalancheReport{
		Samples:         samples,
		InputSize:       inputSize,
		OverallFraction: float64(overallFlipped) / float64(samples*smhash.Size*8),
		LaneFraction:    float64(laneFlipped) / float64(samples*smhash.Size*4),
	}
	glog.V(2).Infof("Avalanche: %d samples, overall %.4f, lane %.4f",
		report.Samples, report.OverallFraction, report.LaneFraction)
	return report
}
