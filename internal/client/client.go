package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/liftedinit/chaind/internal/chain"
)

// chainResponse mirrors the GET /chain payload served by every node.
type chainResponse struct {
	Chain  []chain.Block `json:"chain"`
	Length int           `json:"length"`
}

// ChainClient fetches full chains from peer nodes over HTTP.
type ChainClient struct {
	rc *resty.Client
}

// NewChainClient initializes a client whose requests time out after timeout.
func NewChainClient(timeout time.Duration) *ChainClient {
	return &ChainClient{rc: resty.New().SetTimeout(timeout)}
}

// FetchChain retrieves the chain of the peer at the given host:port identity.
// A malformed response, a non-200 status or a length/chain mismatch is an
// error; the caller decides whether to skip or escalate.
func (c *ChainClient) FetchChain(ctx context.Context, peer string) ([]chain.Block, error) {
	var payload chainResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("http://%s/chain", peer))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to fetch peer chain")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("peer %s returned status %d", peer, resp.StatusCode())
	}
	if len(payload.Chain) != payload.Length {
		return nil, fmt.Errorf("peer %s reported length %d but sent %d blocks", peer, payload.Length, len(payload.Chain))
	}

	return payload.Chain, nil
}
