package types

import (
	"encoding/binary"

	"github.com/minio/sha256-simd"
	"go.uber.org/zap/zapcore"
)

// PartialSolution binds a counter to an epoch challenge and a recipient.
type PartialSolution struct {
	EpochHash Hash    `json:"epoch_hash"`
	Address   Address `json:"address"`
	Counter   uint64  `json:"counter"`
}

// Proof is the nonce that lifts a partial solution to its claimed target.
type Proof struct {
	Nonce uint64 `json:"nonce"`
}

// Solution is what gets broadcast to the node.
//
// Target is the value the solution claims to reach. Proof is nil for
// synthetic solutions, which makes the claim unverifiable.
type Solution struct {
	Partial PartialSolution `json:"partial_solution"`
	Target  uint64          `json:"target"`
	Proof   *Proof          `json:"proof,omitempty"`
}

// ID is sha256(epoch_hash || address || counter).
func (s *Solution) ID() Hash {
	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], s.Partial.Counter)

	h := sha256.New()
	h.Write(s.Partial.EpochHash[:])
	h.Write(s.Partial.Address[:])
	h.Write(counter[:])

	var id Hash
	h.Sum(id[:0])
	return id
}

// implement zap.ObjectMarshaler interface.
func (s *Solution) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", s.ID().String())
	enc.AddString("epoch_hash", s.Partial.EpochHash.String())
	enc.AddUint64("counter", s.Partial.Counter)
	enc.AddUint64("target", s.Target)
	enc.AddBool("proven", s.Proof != nil)
	return nil
}
