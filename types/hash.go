package types

import (
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// HashSize is the length of block and epoch hashes.
	HashSize = 32
	// AddressSize is the length of a recipient address.
	AddressSize = 32
)

var ErrInvalidLength = errors.New("invalid length")

// Hash identifies a block. The epoch challenge is a Hash too.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	return decodeFixed(h[:], text)
}

// Address is the recipient a solution is bound to.
type Address [AddressSize]byte

// ZeroAddress is the default recipient.
var ZeroAddress Address

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	return decodeFixed(a[:], text)
}

// MarshalFlag implements flags.Marshaler.
func (a Address) MarshalFlag() (string, error) {
	return a.String(), nil
}

// UnmarshalFlag implements flags.Unmarshaler.
func (a *Address) UnmarshalFlag(value string) error {
	return a.UnmarshalText([]byte(value))
}

func decodeFixed(dst, text []byte) error {
	if hex.DecodedLen(len(text)) != len(dst) {
		return fmt.Errorf("%w: expected %d hex encoded bytes, got %d characters", ErrInvalidLength, len(dst), len(text))
	}
	if _, err := hex.Decode(dst, text); err != nil {
		return fmt.Errorf("decoding hex: %w", err)
	}
	return nil
}
