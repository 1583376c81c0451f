package consensus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/liftedinit/chaind/internal/chain"
)

// ChainFetcher retrieves a peer's full chain.
type ChainFetcher interface {
	FetchChain(ctx context.Context, peer string) ([]chain.Block, error)
}

// Resolver reconciles the local ledger against peer nodes using the longest
// valid chain rule: among all reachable peers, the strictly longest chain
// passing validation replaces the local one. Length is a faithful work proxy
// only because the proof-of-work difficulty is fixed.
type Resolver struct {
	ledger         *chain.Ledger
	fetcher        ChainFetcher
	peerTimeout    time.Duration
	maxConcurrency uint
}

// NewResolver wires a resolver to the local ledger. Each peer fetch is
// bounded by peerTimeout and at most maxConcurrency fetches run at once.
func NewResolver(ledger *chain.Ledger, fetcher ChainFetcher, peerTimeout time.Duration, maxConcurrency uint) *Resolver {
	if maxConcurrency == 0 {
		maxConcurrency = 1
	}
	return &Resolver{
		ledger:         ledger,
		fetcher:        fetcher,
		peerTimeout:    peerTimeout,
		maxConcurrency: maxConcurrency,
	}
}

// Resolve queries every peer concurrently, each fetch with its own timeout so
// a slow peer never blocks evaluation of the others. Unreachable peers and
// peers serving invalid chains are skipped, never fatal. The strictly longest
// valid candidate is swapped in atomically if it beats the local length.
// Reports whether the local chain was replaced.
func (r *Resolver) Resolve(ctx context.Context, peerList []string) (bool, error) {
	var (
		mu   sync.Mutex
		best []chain.Block
	)

	eg, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, r.maxConcurrency)

	for _, peer := range peerList {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		sem <- struct{}{}

		eg.Go(func() error {
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, r.peerTimeout)
			defer cancel()

			candidate, err := r.fetcher.FetchChain(fetchCtx, peer)
			if err != nil {
				slog.Warn("Skipping unreachable peer", "peer", peer, "error", err)
				return nil
			}
			if !chain.ValidChain(candidate) {
				slog.Warn("Skipping peer with invalid chain", "peer", peer, "length", len(candidate))
				return nil
			}

			mu.Lock()
			if len(candidate) > len(best) {
				best = candidate
			}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return false, err
	}
	if best == nil {
		return false, nil
	}

	replaced := r.ledger.ReplaceIfLonger(best)
	if replaced {
		slog.Info("Local chain replaced by longer peer chain", "length", len(best))
	}
	return replaced, nil
}
