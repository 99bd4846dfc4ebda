package puzzle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/solflood/puzzle"
	"github.com/spacemeshos/solflood/types"
)

func TestAchievedTarget(t *testing.T) {
	r := require.New(t)

	r.EqualValues(uint64(math.MaxUint64), puzzle.AchievedTarget(make([]byte, 32)))
	r.EqualValues(uint64(math.MaxUint64), puzzle.AchievedTarget([]byte{0, 0, 0, 0, 0, 0, 0, 1}))
	r.EqualValues(1, puzzle.AchievedTarget([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))
	r.EqualValues(1, puzzle.AchievedTarget([]byte{0x80, 0, 0, 0, 0, 0, 0, 0}))
	r.EqualValues(3, puzzle.AchievedTarget([]byte{0x40, 0, 0, 0, 0, 0, 0, 0}))
}

func TestHashProver(t *testing.T) {
	t.Parallel()
	challenge := types.Hash{1, 2, 3}
	address := types.Address{4, 5, 6}

	prover := puzzle.NewHashProver(4096)
	solution, err := prover.Prove(challenge, address, 42, 16)
	require.NoError(t, err)
	require.Equal(t, challenge, solution.Partial.EpochHash)
	require.Equal(t, address, solution.Partial.Address)
	require.EqualValues(t, 42, solution.Partial.Counter)
	require.GreaterOrEqual(t, solution.Target, uint64(16))
	require.NotNil(t, solution.Proof)

	require.NoError(t, puzzle.Verify(solution, 16))

	// Same inputs, same proof.
	again, err := prover.Prove(challenge, address, 42, 16)
	require.NoError(t, err)
	require.Equal(t, solution, again)
}

func TestHashProverGivesUp(t *testing.T) {
	t.Parallel()
	_, err := puzzle.NewHashProver(16).Prove(types.Hash{}, types.ZeroAddress, 1, math.MaxUint64)
	require.ErrorIs(t, err, puzzle.ErrNoSolution)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	solution, err := puzzle.NewHashProver(4096).Prove(types.Hash{9}, types.ZeroAddress, 7, 8)
	require.NoError(t, err)
	require.NoError(t, puzzle.Verify(solution, 8))

	t.Run("target not met", func(t *testing.T) {
		require.ErrorIs(t, puzzle.Verify(solution, solution.Target+1), puzzle.ErrTargetNotMet)
	})
	t.Run("inflated claim", func(t *testing.T) {
		forged := *solution
		forged.Target = solution.Target + 1
		require.ErrorIs(t, puzzle.Verify(&forged, 8), puzzle.ErrInvalidProof)
	})
	t.Run("other epoch", func(t *testing.T) {
		forged := *solution
		forged.Partial.EpochHash = types.Hash{10}
		require.ErrorIs(t, puzzle.Verify(&forged, 0), puzzle.ErrInvalidProof)
	})
	t.Run("no proof", func(t *testing.T) {
		forged := *solution
		forged.Proof = nil
		require.ErrorIs(t, puzzle.Verify(&forged, 0), puzzle.ErrMissingProof)
	})
}

func BenchmarkProve(b *testing.B) {
	prover := puzzle.NewHashProver(math.MaxUint64)
	for i := 0; i < b.N; i++ {
		_, err := prover.Prove(types.Hash{}, types.ZeroAddress, uint64(i), 1<<12)
		require.NoError(b, err)
	}
}
