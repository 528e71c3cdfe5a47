package smhash

import "math/bits"

// rotr64 rotates value right by shift bits. Callers keep shift in (0, 64).
func rotr64(value uint64, shift uint) uint64 {
	return bits.RotateLeft64(value, -int(shift))
}

// rotl64 rotates value left by shift bits. Callers keep shift in (0, 64).
func rotl64(value uint64, shift uint) uint64 {
	return bits.RotateLeft64(value, int(shift))
}

// mix is the diffusion primitive everything else in this package is built on.
// Two rounds over a pair of words, four distinct rotation distances with no
// useful common factor with 64, rotating in both directions and feeding each
// freshly updated word into the next step. One call spreads a single flipped
// input bit across most positions of both words, which is what lets the block
// absorption get away with so few rounds.
//
// Any change here changes every digest this module has ever produced, so the
// function is deliberately the only place mixing logic lives.
func mix(x uint64, y uint64) (uint64, uint64) {
	x = rotr64(x, 13) ^ y
	y = rotl64(y, 17) ^ x

	x = rotr64(x, 21) ^ y
	y = rotl64(y, 29) ^ x

	return x, y
}
