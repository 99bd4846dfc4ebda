package epoch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/solflood/types"
)

// DefaultBlocksPerEpoch is the epoch length of the target network.
const DefaultBlocksPerEpoch = 360

var ErrZeroEpochLength = errors.New("blocks per epoch must be greater than 0")

//go:generate mockgen -package mocks -destination mocks/block_source.go . BlockSource

type BlockSource interface {
	LatestBlock(ctx context.Context) (*types.Block, error)
	Block(ctx context.Context, height uint32) (*types.Block, error)
}

// NetworkState is a snapshot of the puzzle parameters at some chain height.
type NetworkState struct {
	BlockHeight uint32
	EpochNumber uint32
	// EpochHash is the previous hash of the first block of the epoch.
	EpochHash   types.Hash
	ProofTarget uint64
}

// implement zap.ObjectMarshaler interface.
func (s NetworkState) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("height", s.BlockHeight)
	enc.AddUint32("epoch", s.EpochNumber)
	enc.AddString("epoch_hash", s.EpochHash.String())
	enc.AddUint64("proof_target", s.ProofTarget)
	return nil
}

// EpochNumber returns the epoch containing the given height.
// A zero epoch length yields epoch 0.
func EpochNumber(height, blocksPerEpoch uint32) uint32 {
	if blocksPerEpoch == 0 {
		return 0
	}
	return height / blocksPerEpoch
}

// EpochStartHeight returns the first height of the given epoch,
// saturating at the maximum height.
func EpochStartHeight(epoch, blocksPerEpoch uint32) uint32 {
	start := uint64(epoch) * uint64(blocksPerEpoch)
	if start > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(start)
}

type Resolver struct {
	blocksPerEpoch uint32
}

func NewResolver(blocksPerEpoch uint32) (*Resolver, error) {
	if blocksPerEpoch == 0 {
		return nil, ErrZeroEpochLength
	}
	return &Resolver{blocksPerEpoch: blocksPerEpoch}, nil
}

func (r *Resolver) BlocksPerEpoch() uint32 {
	return r.blocksPerEpoch
}

// Resolve reads the chain tip and the first block of its epoch.
//
// The epoch hash is taken one block before the epoch boundary, so every
// participant agrees on an already settled value.
func (r *Resolver) Resolve(ctx context.Context, blocks BlockSource) (NetworkState, error) {
	latest, err := blocks.LatestBlock(ctx)
	if err != nil {
		return NetworkState{}, fmt.Errorf("fetching latest block: %w", err)
	}
	height := latest.Height()
	epoch := EpochNumber(height, r.blocksPerEpoch)
	start := EpochStartHeight(epoch, r.blocksPerEpoch)

	first, err := blocks.Block(ctx, start)
	if err != nil {
		return NetworkState{}, fmt.Errorf("fetching first block of epoch %d at height %d: %w", epoch, start, err)
	}

	return NetworkState{
		BlockHeight: height,
		EpochNumber: epoch,
		EpochHash:   first.PreviousHash(),
		ProofTarget: latest.ProofTarget(),
	}, nil
}
