package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/chaind/internal/chain"
	"github.com/liftedinit/chaind/internal/client"
)

func peerIdentity(t *testing.T, server *httptest.Server) string {
	t.Helper()
	return strings.TrimPrefix(server.URL, "http://")
}

func TestFetchChain(t *testing.T) {
	blocks := []chain.Block{
		{Index: 1, Proof: chain.GenesisProof, PreviousHash: chain.GenesisPreviousHash, Transactions: []chain.Transaction{}},
		{Index: 2, Proof: 35293, PreviousHash: "abc", Transactions: []chain.Transaction{{Sender: "a", Recipient: "b", Amount: 5}}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chain", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"chain": blocks, "length": len(blocks)}))
	}))
	defer server.Close()

	fetched, err := client.NewChainClient(time.Second).FetchChain(context.Background(), peerIdentity(t, server))
	require.NoError(t, err)
	assert.Equal(t, blocks, fetched)
}

func TestFetchChainRejectsLengthMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chain": [], "length": 3}`))
	}))
	defer server.Close()

	_, err := client.NewChainClient(time.Second).FetchChain(context.Background(), peerIdentity(t, server))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reported length 3")
}

func TestFetchChainRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := client.NewChainClient(time.Second).FetchChain(context.Background(), peerIdentity(t, server))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchChainUnreachablePeer(t *testing.T) {
	_, err := client.NewChainClient(200 * time.Millisecond).FetchChain(context.Background(), "127.0.0.1:1")
	require.Error(t, err)
}

func TestFetchChainHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.NewChainClient(time.Minute).FetchChain(ctx, peerIdentity(t, server))
	require.Error(t, err)
}
