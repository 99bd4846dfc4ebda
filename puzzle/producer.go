package puzzle

import (
	"fmt"
	"math/rand/v2"

	"github.com/spacemeshos/solflood/epoch"
	"github.com/spacemeshos/solflood/types"
)

// Producer builds solutions for a network state. It does no I/O and keeps
// no state besides its configuration, randomness is supplied by the caller.
type Producer struct {
	prover    Prover
	recipient types.Address
}

func NewProducer(prover Prover, recipient types.Address) *Producer {
	return &Producer{prover: prover, recipient: recipient}
}

// Genuine proves a fresh random counter against the state's proof target.
// Failing is routine, callers retry with a new counter.
func (p *Producer) Genuine(state epoch.NetworkState, rng *rand.Rand) (*types.Solution, error) {
	counter := rng.Uint64()
	solution, err := p.prover.Prove(state.EpochHash, p.recipient, counter, state.ProofTarget)
	if err != nil {
		return nil, fmt.Errorf("proving counter %d: %w", counter, err)
	}
	if solution == nil {
		return nil, fmt.Errorf("proving counter %d: %w", counter, ErrNoSolution)
	}
	if solution.Partial.EpochHash != state.EpochHash {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrStaleChallenge, solution.Partial.EpochHash, state.EpochHash)
	}
	return solution, nil
}

// Synthetic builds a well formed solution with a random counter and a random
// claimed target, skipping the proof of work. Nodes are expected to reject it.
func (p *Producer) Synthetic(state epoch.NetworkState, rng *rand.Rand) *types.Solution {
	return &types.Solution{
		Partial: types.PartialSolution{
			EpochHash: state.EpochHash,
			Address:   p.recipient,
			Counter:   rng.Uint64(),
		},
		Target: rng.Uint64(),
	}
}
