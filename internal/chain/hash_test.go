package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/chaind/internal/chain"
)

func TestHashDeterministic(t *testing.T) {
	first := chain.Block{
		Index:        2,
		Timestamp:    1700000000,
		Transactions: []chain.Transaction{{Sender: "a", Recipient: "b", Amount: 5}},
		Proof:        35293,
		PreviousHash: "abc",
	}

	// Same field values assigned in a different order must hash identically.
	var second chain.Block
	second.PreviousHash = "abc"
	second.Proof = 35293
	second.Transactions = []chain.Transaction{{Amount: 5, Recipient: "b", Sender: "a"}}
	second.Timestamp = 1700000000
	second.Index = 2

	require.Equal(t, chain.Hash(first), chain.Hash(second))
	require.Equal(t, chain.Hash(first), chain.Hash(first))
}

func TestHashFormat(t *testing.T) {
	digest := chain.Hash(chain.Block{Index: 1, Proof: 100, PreviousHash: "1"})
	assert.Len(t, digest, 64)
	assert.Regexp(t, "^[0-9a-f]+$", digest)
}

func TestHashSensitiveToContent(t *testing.T) {
	block := chain.Block{Index: 1, Timestamp: 42, Proof: 100, PreviousHash: "1"}
	tampered := block
	tampered.Proof = 101
	assert.NotEqual(t, chain.Hash(block), chain.Hash(tampered))
}
