package chain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/chaind/internal/chain"
)

func TestSolveProducesValidProof(t *testing.T) {
	for _, lastProof := range []int64{100, 0, 1, 35293, 987654321} {
		proof, err := chain.Solve(context.Background(), lastProof)
		require.NoError(t, err)
		assert.True(t, chain.ValidProof(lastProof, proof), "solve(%d) returned %d", lastProof, proof)
	}
}

func TestSolveReturnsFirstSolution(t *testing.T) {
	proof, err := chain.Solve(context.Background(), 100)
	require.NoError(t, err)

	for candidate := int64(0); candidate < proof; candidate++ {
		require.False(t, chain.ValidProof(100, candidate), "candidate %d below the solution must not validate", candidate)
	}
}

func TestSolveCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.Solve(ctx, 100)
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidProofRejectsGarbage(t *testing.T) {
	assert.False(t, chain.ValidProof(100, -1))
	assert.False(t, chain.ValidProof(0, 0))
}
