package chain

import (
	"errors"
	"sync"
	"time"
)

// Genesis sentinel values. The first block's proof and previous hash are
// given, not derived, and are exempt from proof-of-work validation.
const (
	GenesisProof        int64 = 100
	GenesisPreviousHash       = "1"
)

// ErrEmptyChain is returned when the last block of an empty chain is
// requested. A ledger built through NewLedger always carries a genesis block,
// so callers should never observe it.
var ErrEmptyChain = errors.New("chain has no blocks")

// Ledger owns the ordered sequence of sealed blocks and the buffer of
// transactions waiting to be sealed. Sealed blocks are never mutated; the
// chain only grows by appending or is replaced wholesale during consensus.
// A single mutex covers both the read-last-block/append sequence inside
// SealBlock and the chain swap inside ReplaceIfLonger, so a seal can never
// interleave with a replacement.
type Ledger struct {
	mu      sync.Mutex
	blocks  []Block
	pending []Transaction
	now     func() int64
}

// NewLedger returns a ledger holding exactly the genesis block.
func NewLedger() *Ledger {
	l := &Ledger{now: func() int64 { return time.Now().Unix() }}
	l.SealBlock(GenesisProof, GenesisPreviousHash)
	return l
}

// NewTransaction buffers a transaction for inclusion in the next sealed block
// and returns the index that block will have.
func (l *Ledger) NewTransaction(sender, recipient string, amount float64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, Transaction{Sender: sender, Recipient: recipient, Amount: amount})
	return l.blocks[len(l.blocks)-1].Index + 1
}

// SealBlock appends a new block carrying a snapshot of the pending
// transactions and clears the buffer. When previousHash is empty it is
// derived from the current last block; passing it explicitly is only needed
// for the genesis block, which has no predecessor to hash.
func (l *Ledger) SealBlock(proof int64, previousHash string) Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	if previousHash == "" {
		previousHash = Hash(l.blocks[len(l.blocks)-1])
	}

	// Non-nil even when empty so the block serializes as "transactions": [].
	transactions := make([]Transaction, len(l.pending))
	copy(transactions, l.pending)

	block := Block{
		Index:        uint64(len(l.blocks)) + 1,
		Timestamp:    l.now(),
		Transactions: transactions,
		Proof:        proof,
		PreviousHash: previousHash,
	}

	l.pending = nil
	l.blocks = append(l.blocks, block)
	return block
}

// LastBlock returns the most recently appended block.
func (l *Ledger) LastBlock() (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}
	return l.blocks[len(l.blocks)-1], nil
}

// Blocks returns a copy of the sealed chain safe for serialization while the
// ledger keeps operating.
func (l *Ledger) Blocks() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	blocks := make([]Block, len(l.blocks))
	copy(blocks, l.blocks)
	return blocks
}

// Length returns the number of sealed blocks.
func (l *Ledger) Length() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.blocks)
}

// PendingCount returns the number of buffered transactions.
func (l *Ledger) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// ReplaceIfLonger swaps the whole chain for candidate when the candidate is
// strictly longer than the local chain, and reports whether the swap
// happened. Equal-length candidates never replace. The swap is atomic:
// readers never observe a partially replaced chain, and the chain can never
// get shorter.
func (l *Ledger) ReplaceIfLonger(candidate []Block) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(candidate) <= len(l.blocks) {
		return false
	}

	blocks := make([]Block, len(candidate))
	copy(blocks, candidate)
	l.blocks = blocks
	return true
}
