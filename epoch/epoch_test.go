package epoch_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spacemeshos/solflood/client"
	"github.com/spacemeshos/solflood/epoch"
	"github.com/spacemeshos/solflood/epoch/mocks"
	"github.com/spacemeshos/solflood/internal/testnode"
	"github.com/spacemeshos/solflood/types"
)

func block(height uint32, previous types.Hash, target uint64) *types.Block {
	b := &types.Block{Previous: previous}
	b.Header.Metadata.Height = height
	b.Header.Metadata.ProofTarget = target
	return b
}

func TestEpochArithmetic(t *testing.T) {
	t.Parallel()
	for _, b := range []uint32{1, 2, 7, 100, 360, math.MaxUint32} {
		for _, h := range []uint32{0, 1, 99, 100, 101, 359, 360, 12345, math.MaxUint32 - 1, math.MaxUint32} {
			e := epoch.EpochNumber(h, b)
			start := epoch.EpochStartHeight(e, b)
			require.Equal(t, h/b, e)
			require.LessOrEqual(t, start, h)
			require.Less(t, uint64(h), uint64(start)+uint64(b), "h=%d b=%d", h, b)
		}
	}
}

func TestEpochNumberZeroLength(t *testing.T) {
	t.Parallel()
	for _, h := range []uint32{0, 1, 360, math.MaxUint32} {
		require.Zero(t, epoch.EpochNumber(h, 0))
		require.Zero(t, epoch.EpochStartHeight(epoch.EpochNumber(h, 0), 0))
	}
}

func TestEpochStartHeightSaturates(t *testing.T) {
	t.Parallel()
	require.EqualValues(t, uint32(math.MaxUint32), epoch.EpochStartHeight(math.MaxUint32, 2))
}

func TestNewResolverRejectsZeroLength(t *testing.T) {
	t.Parallel()
	_, err := epoch.NewResolver(0)
	require.ErrorIs(t, err, epoch.ErrZeroEpochLength)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		height uint32
		epoch  uint32
		start  uint32
	}{
		{name: "first epoch", height: 99, epoch: 0, start: 0},
		{name: "second epoch", height: 150, epoch: 1, start: 100},
		{name: "boundary", height: 200, epoch: 2, start: 200},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			blocks := mocks.NewMockBlockSource(gomock.NewController(t))
			epochHash := types.Hash{0xee, byte(tc.start)}

			gomock.InOrder(
				blocks.EXPECT().LatestBlock(gomock.Any()).Return(block(tc.height, types.Hash{0x01}, 777), nil),
				blocks.EXPECT().Block(gomock.Any(), tc.start).Return(block(tc.start, epochHash, 1), nil),
			)

			resolver, err := epoch.NewResolver(100)
			require.NoError(t, err)
			state, err := resolver.Resolve(context.Background(), blocks)
			require.NoError(t, err)
			require.Equal(t, epoch.NetworkState{
				BlockHeight: tc.height,
				EpochNumber: tc.epoch,
				EpochHash:   epochHash,
				ProofTarget: 777,
			}, state)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()
	blocks := mocks.NewMockBlockSource(gomock.NewController(t))
	blocks.EXPECT().LatestBlock(gomock.Any()).Times(2).Return(block(1234, types.Hash{0x02}, 99), nil)
	blocks.EXPECT().Block(gomock.Any(), uint32(1080)).Times(2).Return(block(1080, types.Hash{0x03}, 50), nil)

	resolver, err := epoch.NewResolver(epoch.DefaultBlocksPerEpoch)
	require.NoError(t, err)
	first, err := resolver.Resolve(context.Background(), blocks)
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), blocks)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 3, first.EpochNumber)
}

func TestResolveFailures(t *testing.T) {
	t.Parallel()
	resolver, err := epoch.NewResolver(100)
	require.NoError(t, err)

	t.Run("latest block", func(t *testing.T) {
		blocks := mocks.NewMockBlockSource(gomock.NewController(t))
		fetchErr := &client.ProtocolError{StatusCode: http.StatusServiceUnavailable}
		blocks.EXPECT().LatestBlock(gomock.Any()).Return(nil, fetchErr)

		state, err := resolver.Resolve(context.Background(), blocks)
		var protoErr *client.ProtocolError
		require.ErrorAs(t, err, &protoErr)
		require.Equal(t, fetchErr, protoErr)
		require.Zero(t, state)
	})
	t.Run("epoch block", func(t *testing.T) {
		blocks := mocks.NewMockBlockSource(gomock.NewController(t))
		fetchErr := errors.New("connection reset")
		blocks.EXPECT().LatestBlock(gomock.Any()).Return(block(150, types.Hash{}, 1), nil)
		blocks.EXPECT().Block(gomock.Any(), uint32(100)).Return(nil, fetchErr)

		state, err := resolver.Resolve(context.Background(), blocks)
		require.ErrorIs(t, err, fetchErr)
		require.Zero(t, state)
	})
}

func TestResolveAgainstNode(t *testing.T) {
	t.Parallel()
	node := testnode.New(t, 150, 4096)
	cl, err := client.New(node.URL())
	require.NoError(t, err)

	resolver, err := epoch.NewResolver(100)
	require.NoError(t, err)
	state, err := resolver.Resolve(context.Background(), cl)
	require.NoError(t, err)
	require.EqualValues(t, 150, state.BlockHeight)
	require.EqualValues(t, 1, state.EpochNumber)
	require.Equal(t, testnode.HashAt(99), state.EpochHash)
	require.EqualValues(t, 4096, state.ProofTarget)
}
