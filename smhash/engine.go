package smhash

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Contract violations surfaced by the Engine. These are caller bugs, not
// recoverable conditions; the engine never silently truncates or pads on the
// caller's behalf.
var (
	// ErrEngineFinalized is returned when input arrives after Finalize.
	// A finalized engine is terminal: hashing a new message means
	// constructing a new engine, which is how "no state shared between
	// independent hashes" is enforced rather than just recommended.
	ErrEngineFinalized = errors.New("smhash: engine is finalized; construct a new engine for a new hash")

	// ErrBlockSize is returned by AbsorbBlock for anything that is not
	// exactly BlockSize bytes.
	ErrBlockSize = errors.New("smhash: absorbed blocks must be exactly 64 bytes")

	// ErrMixedInput is returned when AbsorbBlock and Write are combined on
	// the same engine. The block path is caller-padded and the stream path
	// is engine-padded; interleaving them would make the digest depend on
	// call order in ways no independent implementation could reproduce.
	ErrMixedInput = errors.New("smhash: cannot combine AbsorbBlock and Write on one engine")
)

type enginePhase uint8

const (
	phaseEmpty enginePhase = iota
	phaseAbsorbing
	phaseFinalized
)

type inputKind uint8

const (
	inputNone inputKind = iota
	inputBlocks
	inputStream
)

// Engine owns the 256-bit hash state and absorbs input into it. An engine
// moves through three phases: empty, absorbing, finalized. Finalized is
// terminal. Engines are not safe for concurrent use; every hashing task gets
// its own instance.
type Engine struct {
	mode   Mode
	rounds int

	state State
	phase enginePhase
	input inputKind

	// Stream-path bookkeeping. AbsorbBlock bypasses all of this.
	buffer   [BlockSize]byte
	buffered int
	length   uint64
}

// NewEngine constructs an engine seeded with the initialization constants.
// The mode, and with it the per-block round count, is fixed for the
// engine's lifetime.
func NewEngine(mode Mode) *Engine {
	return &Engine{
		mode:   mode,
		rounds: mode.Rounds(),
		state:  initializationConstants,
	}
}

// Mode returns the mode the engine was constructed with.
func (engine *Engine) Mode() Mode {
	return engine.mode
}

// absorbBlock folds one 64-byte block into the state: the 8 big-endian words
// are XOR-folded pairwise onto the 4 state words, then the mode's round count
// of pair mixes runs. The fold couples every input word into the state in a
// single pass while each mix call keeps a two-word working set that stays in
// registers.
func (engine *Engine) absorbBlock(block []byte) {
	v0 := binary.BigEndian.Uint64(block[0:8])
	v1 := binary.BigEndian.Uint64(block[8:16])
	v2 := binary.BigEndian.Uint64(block[16:24])
	v3 := binary.BigEndian.Uint64(block[24:32])
	v4 := binary.BigEndian.Uint64(block[32:40])
	v5 := binary.BigEndian.Uint64(block[40:48])
	v6 := binary.BigEndian.Uint64(block[48:56])
	v7 := binary.BigEndian.Uint64(block[56:64])

	engine.state[0] ^= v0 ^ v4
	engine.state[1] ^= v1 ^ v5
	engine.state[2] ^= v2 ^ v6
	engine.state[3] ^= v3 ^ v7

	for round := 0; round < engine.rounds; round++ {
		engine.state[0], engine.state[1] = mix(engine.state[0], engine.state[1])
		engine.state[2], engine.state[3] = mix(engine.state[2], engine.state[3])
	}
}

// AbsorbBlock absorbs one caller-padded block of exactly BlockSize bytes.
// Any other length is rejected.
func (engine *Engine) AbsorbBlock(block []byte) error {
	if engine.phase == phaseFinalized {
		return errors.Wrap(ErrEngineFinalized, "AbsorbBlock")
	}
	if engine.input == inputStream {
		return errors.Wrap(ErrMixedInput, "AbsorbBlock")
	}
	if len(block) != BlockSize {
		return errors.Wrapf(ErrBlockSize, "AbsorbBlock: got %d bytes", len(block))
	}

	engine.phase = phaseAbsorbing
	engine.input = inputBlocks
	engine.absorbBlock(block)
	return nil
}

// Write absorbs arbitrary bytes, buffering partial blocks. The engine pads
// the stream at finalization. Implements io.Writer; the error is only
// non-nil on a phase contract violation.
func (engine *Engine) Write(data []byte) (int, error) {
	if engine.phase == phaseFinalized {
		return 0, errors.Wrap(ErrEngineFinalized, "Write")
	}
	if engine.input == inputBlocks {
		return 0, errors.Wrap(ErrMixedInput, "Write")
	}

	engine.phase = phaseAbsorbing
	engine.input = inputStream
	engine.length += uint64(len(data))
	written := len(data)

	if engine.buffered > 0 {
		n := copy(engine.buffer[engine.buffered:], data)
		engine.buffered += n
		data = data[n:]
		if engine.buffered == BlockSize {
			engine.absorbBlock(engine.buffer[:])
			engine.buffered = 0
		}
	}
	for len(data) >= BlockSize {
		engine.absorbBlock(data[:BlockSize])
		data = data[BlockSize:]
	}
	engine.buffered += copy(engine.buffer[engine.buffered:], data)

	return written, nil
}

// FinalizeState finalizes the engine and returns the raw state words. Block
// input is finalized as-is; stream input gets the padding described below
// first. The returned State is the miner's base state input to FastNonceMix.
//
// Stream padding is MD-strengthening style: a 0x80 byte, zero bytes, then
// the total message length in bytes as a big-endian uint64 closing the last
// block. A message that ends exactly on a block boundary gets a full padding
// block. The length suffix commits the digest to the message length, so no
// two messages of different lengths share a padded image.
func (engine *Engine) FinalizeState() (State, error) {
	if engine.phase == phaseFinalized {
		return State{}, errors.Wrap(ErrEngineFinalized, "FinalizeState")
	}

	if engine.input != inputBlocks {
		messageLength := engine.length

		engine.buffer[engine.buffered] = 0x80
		engine.buffered++
		if engine.buffered > BlockSize-8 {
			for i := engine.buffered; i < BlockSize; i++ {
				engine.buffer[i] = 0
			}
			engine.absorbBlock(engine.buffer[:])
			engine.buffered = 0
		}
		for i := engine.buffered; i < BlockSize-8; i++ {
			engine.buffer[i] = 0
		}
		binary.BigEndian.PutUint64(engine.buffer[BlockSize-8:], messageLength)
		engine.absorbBlock(engine.buffer[:])
		engine.buffered = 0
	}

	engine.phase = phaseFinalized
	return engine.state, nil
}

// Finalize finalizes the engine and serializes the digest.
func (engine *Engine) Finalize() ([Size]byte, error) {
	state, err := engine.FinalizeState()
	if err != nil {
		return [Size]byte{}, err
	}
	return state.Serialize(), nil
}
