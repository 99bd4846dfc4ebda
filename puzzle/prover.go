package puzzle

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math"

	"github.com/c0mm4nd/go-ripemd"

	"github.com/spacemeshos/solflood/types"
)

// DefaultSearchBound is the number of nonces HashProver tries per counter.
const DefaultSearchBound = 4096

var (
	ErrNoSolution     = errors.New("no nonce reaches the target")
	ErrMissingProof   = errors.New("solution carries no proof")
	ErrInvalidProof   = errors.New("proof does not match the claimed target")
	ErrTargetNotMet   = errors.New("solution target is below the proof target")
	ErrStaleChallenge = errors.New("solution is bound to another epoch")
)

//go:generate mockgen -package mocks -destination mocks/prover.go . Prover

type Prover interface {
	// Prove searches for a proof that the partial solution
	// (challenge, address, counter) reaches at least `target`.
	// It fails with ErrNoSolution when none is found.
	Prove(challenge types.Hash, address types.Address, counter, target uint64) (*types.Solution, error)
}

// HashProver is a hash based proof of work backend.
//
// The work hash is ripemd256(challenge || address || counter || nonce). Its
// first 8 bytes, read as a big endian integer w, give the achieved target
// MaxUint64 / w. Expected work to reach target t is about t hashes.
type HashProver struct {
	searchBound uint64
}

func NewHashProver(searchBound uint64) *HashProver {
	if searchBound == 0 {
		searchBound = DefaultSearchBound
	}
	return &HashProver{searchBound: searchBound}
}

// Prove implements Prover.
func (p *HashProver) Prove(challenge types.Hash, address types.Address, counter, target uint64) (*types.Solution, error) {
	h := newWorkHasher(challenge, address, counter)
	var digest []byte
	for nonce := uint64(0); nonce < p.searchBound; nonce++ {
		digest = h.Hash(nonce, digest[:0])
		if achieved := AchievedTarget(digest); achieved >= target {
			return &types.Solution{
				Partial: types.PartialSolution{
					EpochHash: challenge,
					Address:   address,
					Counter:   counter,
				},
				Target: achieved,
				Proof:  &types.Proof{Nonce: nonce},
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: target %d, %d nonces tried", ErrNoSolution, target, p.searchBound)
}

// Verify checks that the solution's proof reaches its claimed target and
// that the claim is at least minTarget.
func Verify(solution *types.Solution, minTarget uint64) error {
	if solution.Proof == nil {
		return ErrMissingProof
	}
	partial := solution.Partial
	digest := newWorkHasher(partial.EpochHash, partial.Address, partial.Counter).Hash(solution.Proof.Nonce, nil)
	if achieved := AchievedTarget(digest); achieved != solution.Target {
		return fmt.Errorf("%w: claimed %d, achieved %d", ErrInvalidProof, solution.Target, achieved)
	}
	if solution.Target < minTarget {
		return fmt.Errorf("%w: %d < %d", ErrTargetNotMet, solution.Target, minTarget)
	}
	return nil
}

// AchievedTarget converts a work digest to the target it reaches.
func AchievedTarget(digest []byte) uint64 {
	w := binary.BigEndian.Uint64(digest[:8])
	if w == 0 {
		return math.MaxUint64
	}
	return math.MaxUint64 / w
}

type workHasher struct {
	h     hash.Hash
	input []byte
}

func newWorkHasher(challenge types.Hash, address types.Address, counter uint64) *workHasher {
	input := make([]byte, 0, types.HashSize+types.AddressSize+16)
	input = append(input, challenge[:]...)
	input = append(input, address[:]...)
	input = binary.LittleEndian.AppendUint64(input, counter)
	input = append(input, make([]byte, 8)...) // placeholder for nonce
	return &workHasher{h: ripemd.New256(), input: input}
}

func (w *workHasher) Hash(nonce uint64, output []byte) []byte {
	binary.LittleEndian.PutUint64(w.input[len(w.input)-8:], nonce)

	w.h.Reset()
	w.h.Write(w.input)
	return w.h.Sum(output)
}
