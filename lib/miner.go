package lib

import (
	"math"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/datstma/smhash/smhash"
)

// miner.go contains all of the logic for mining block headers with a CPU.

// MiningResult pairs a winning nonce with the digest it produced. It is only
// ever constructed for digests that satisfied the difficulty target.
type MiningResult struct {
	Nonce  uint32
	Digest *BlockHash
}

// Progress gets logged every this many nonce attempts per worker.
const miningLogInterval = 100000

// Mine is the single-threaded search: it scans nonces from 0 up to but not
// including maxNonce and returns the first one whose digest carries at least
// target leading zero hex digits. Exhausting the range without a match is an
// expected outcome reported through the found flag, not an error; callers
// raise maxNonce or lower the target and retry.
func Mine(header *MsgBlockHeader, target uint32, maxNonce uint64,
	mode smhash.Mode) (_result *MiningResult, _found bool, _err error) {

	return NewMiner(1, mode).MineHeader(header, target, maxNonce)
}

// Miner drives the nonce search. The search splits the nonce space into one
// contiguous range per thread; workers share only the immutable base state
// and each candidate trial works on a private copy, so no synchronization
// happens anywhere on the hot path.
//
// A Miner instance may be reused across headers but not shared by concurrent
// MineHeader calls.
type Miner struct {
	numThreads uint32
	mode       smhash.Mode

	stopping int32
}

func NewMiner(numThreads uint32, mode smhash.Mode) *Miner {
	if numThreads == 0 {
		numThreads = 1
	}
	return &Miner{
		numThreads: numThreads,
		mode:       mode,
	}
}

// Stop makes every worker bail out at its next nonce attempt. This provides
// a way for outside processes to halt the miner; the nonce loop has no finer
// suspension points.
func (miner *Miner) Stop() {
	atomic.AddInt32(&miner.stopping, 1)
}

func (miner *Miner) stopped() bool {
	return atomic.LoadInt32(&miner.stopping) != 0
}

// MineHeader computes the header's base state once and then scans the nonce
// space [0, maxNonce) for a digest satisfying the target. With more than one
// thread the returned nonce is the lowest among the candidates that won
// their ranges; with one thread it is exactly the first match.
func (miner *Miner) MineHeader(header *MsgBlockHeader, target uint32,
	maxNonce uint64) (_result *MiningResult, _found bool, _err error) {

	if maxNonce > uint64(math.MaxUint32)+1 {
		// The header's nonce field is 32 bits wide.
		maxNonce = uint64(math.MaxUint32) + 1
	}
	if maxNonce == 0 {
		return nil, false, nil
	}

	baseState, err := HeaderBaseState(header, miner.mode)
	if err != nil {
		return nil, false, errors.Wrapf(err, "MineHeader: Problem computing base state")
	}

	numWorkers := uint64(miner.numThreads)
	if numWorkers > maxNonce {
		numWorkers = maxNonce
	}
	rangeSize := (maxNonce + numWorkers - 1) / numWorkers

	var solved int32
	results := make(chan *MiningResult, numWorkers)

	workers := new(errgroup.Group)
	for workerIndex := uint64(0); workerIndex < numWorkers; workerIndex++ {
		workerIndex := workerIndex
		rangeStart := workerIndex * rangeSize
		rangeEnd := rangeStart + rangeSize
		if rangeEnd > maxNonce {
			rangeEnd = maxNonce
		}

		workers.Go(func() error {
			for nonce := rangeStart; nonce < rangeEnd; nonce++ {
				if atomic.LoadInt32(&solved) != 0 || miner.stopped() {
					return nil
				}

				candidateState := smhash.FastNonceMix(baseState, nonce)
				digest := BlockHash(candidateState.Serialize())
				if CheckDifficultyTarget(&digest, target) {
					atomic.StoreInt32(&solved, 1)
					results <- &MiningResult{Nonce: uint32(nonce), Digest: &digest}
					return nil
				}

				if attempts := nonce - rangeStart; attempts != 0 && attempts%miningLogInterval == 0 {
					glog.V(2).Infof("Miner.MineHeader: Worker %d tried %d nonces", workerIndex, attempts)
				}
			}
			return nil
		})
	}
	_ = workers.Wait()
	close(results)

	var best *MiningResult
	for result := range results {
		if best == nil || result.Nonce < best.Nonce {
			best = result
		}
	}
	if best == nil {
		glog.V(1).Infof("Miner.MineHeader: Exhausted %d nonces without meeting target %d", maxNonce, target)
		return nil, false, nil
	}

	glog.V(1).Infof("Miner.MineHeader: Found nonce %d with digest %v at target %d",
		best.Nonce, best.Digest, target)
	if glog.V(2) {
		scs := spew.ConfigState{DisableMethods: true, Indent: "  ", DisablePointerAddresses: true}
		glog.V(2).Info(scs.Sdump(best))
	}

	return best, true, nil
}
