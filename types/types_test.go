package types_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/solflood/types"
)

func TestHashText(t *testing.T) {
	r := require.New(t)

	var h types.Hash
	for i := range h {
		h[i] = byte(i)
	}
	text, err := h.MarshalText()
	r.NoError(err)
	r.Equal(h.String(), string(text))

	var decoded types.Hash
	r.NoError(decoded.UnmarshalText(text))
	r.Equal(h, decoded)

	r.ErrorIs(decoded.UnmarshalText(text[2:]), types.ErrInvalidLength)
	r.Error(decoded.UnmarshalText([]byte(strings.Repeat("zz", types.HashSize))))
}

func TestAddressFlag(t *testing.T) {
	var a types.Address
	require.NoError(t, a.UnmarshalFlag(strings.Repeat("ab", types.AddressSize)))
	require.Equal(t, byte(0xab), a[types.AddressSize-1])
	require.ErrorIs(t, a.UnmarshalFlag("abab"), types.ErrInvalidLength)
}

func TestBlockFromJSON(t *testing.T) {
	prev := types.Hash{1, 2, 3}
	raw := `{
		"block_hash": "` + types.Hash{9}.String() + `",
		"previous_hash": "` + prev.String() + `",
		"header": {"metadata": {"height": 150, "proof_target": 1024, "coinbase_target": 4096, "timestamp": 1700000000}},
		"transactions": []
	}`

	var block types.Block
	require.NoError(t, json.Unmarshal([]byte(raw), &block))
	require.EqualValues(t, 150, block.Height())
	require.EqualValues(t, 1024, block.ProofTarget())
	require.Equal(t, prev, block.PreviousHash())
}

func TestBlockRequiresConsumedFields(t *testing.T) {
	prev := `"previous_hash": "` + types.Hash{1}.String() + `"`
	tests := map[string]string{
		"null":               `null`,
		"empty":              `{}`,
		"unexpected":         `{"unexpected": true}`,
		"no previous hash":   `{"header": {"metadata": {"height": 1, "proof_target": 2}}}`,
		"no metadata":        `{` + prev + `, "header": {}}`,
		"no height":          `{` + prev + `, "header": {"metadata": {"proof_target": 2}}}`,
		"no proof target":    `{` + prev + `, "header": {"metadata": {"height": 1}}}`,
		"null previous hash": `{"previous_hash": null, "header": {"metadata": {"height": 1, "proof_target": 2}}}`,
	}
	for name, raw := range tests {
		raw := raw
		t.Run(name, func(t *testing.T) {
			var block types.Block
			require.ErrorIs(t, block.UnmarshalJSON([]byte(raw)), types.ErrMissingField)
		})
	}

	var block types.Block
	require.NoError(t, json.Unmarshal([]byte(`{`+prev+`, "header": {"metadata": {"height": 0, "proof_target": 0}}}`), &block))
	require.Zero(t, block.Height())
	require.Equal(t, types.Hash{1}, block.PreviousHash())
}

func TestSolutionID(t *testing.T) {
	s := types.Solution{
		Partial: types.PartialSolution{EpochHash: types.Hash{1}, Counter: 7},
		Target:  100,
	}
	id := s.ID()
	require.Equal(t, id, s.ID())

	// The claimed target and the proof are not part of the identity.
	s.Target = 5
	s.Proof = &types.Proof{Nonce: 3}
	require.Equal(t, id, s.ID())

	s.Partial.Counter++
	require.NotEqual(t, id, s.ID())
}

func TestSyntheticSolutionOmitsProof(t *testing.T) {
	s := types.Solution{Target: 9}
	data, err := json.Marshal(&s)
	require.NoError(t, err)
	require.NotContains(t, string(data), "proof")
	require.Contains(t, string(data), `"partial_solution"`)
}
