package chain

// Transaction is a single transfer waiting in the pending buffer or sealed
// into a block. Sender, recipient and amount are recorded as submitted; the
// ledger tracks no balances and enforces no signature scheme.
type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// Block is one hash-linked record in the chain. The JSON field names are part
// of the wire contract: peer chains are compared structurally during
// consensus, so the names and casing must match across nodes exactly.
type Block struct {
	Index        uint64        `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}
