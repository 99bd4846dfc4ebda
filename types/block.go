package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var ErrMissingField = errors.New("missing block field")

// Block is a block as served by the node. Only the height, the previous
// block hash and the proof target are consumed.
type Block struct {
	Hash     Hash   `json:"block_hash"`
	Previous Hash   `json:"previous_hash"`
	Header   Header `json:"header"`
}

type Header struct {
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	Height         uint32 `json:"height"`
	ProofTarget    uint64 `json:"proof_target"`
	CoinbaseTarget uint64 `json:"coinbase_target"`
	Timestamp      int64  `json:"timestamp"`
}

func (b *Block) Height() uint32 {
	return b.Header.Metadata.Height
}

func (b *Block) PreviousHash() Hash {
	return b.Previous
}

// ProofTarget is the minimum target a solution must reach to be accepted
// while this block is the chain tip.
func (b *Block) ProofTarget() uint64 {
	return b.Header.Metadata.ProofTarget
}

// UnmarshalJSON requires the fields a block is consumed for and rejects null.
// Unknown fields are ignored.
func (b *Block) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("%w: block is null", ErrMissingField)
	}
	var raw struct {
		Hash     Hash  `json:"block_hash"`
		Previous *Hash `json:"previous_hash"`
		Header   *struct {
			Metadata *struct {
				Height         *uint32 `json:"height"`
				ProofTarget    *uint64 `json:"proof_target"`
				CoinbaseTarget uint64  `json:"coinbase_target"`
				Timestamp      int64   `json:"timestamp"`
			} `json:"metadata"`
		} `json:"header"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Previous == nil:
		return fmt.Errorf("%w: previous_hash", ErrMissingField)
	case raw.Header == nil || raw.Header.Metadata == nil:
		return fmt.Errorf("%w: header.metadata", ErrMissingField)
	case raw.Header.Metadata.Height == nil:
		return fmt.Errorf("%w: header.metadata.height", ErrMissingField)
	case raw.Header.Metadata.ProofTarget == nil:
		return fmt.Errorf("%w: header.metadata.proof_target", ErrMissingField)
	}

	meta := raw.Header.Metadata
	*b = Block{
		Hash:     raw.Hash,
		Previous: *raw.Previous,
		Header: Header{Metadata: Metadata{
			Height:         *meta.Height,
			ProofTarget:    *meta.ProofTarget,
			CoinbaseTarget: meta.CoinbaseTarget,
			Timestamp:      meta.Timestamp,
		}},
	}
	return nil
}
