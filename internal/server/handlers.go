package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/liftedinit/chaind/internal/chain"
)

// transactionRequest is the POST /transactions/new body. Pointer fields
// distinguish a missing field from a zero value so validation happens once,
// here at the boundary.
type transactionRequest struct {
	Sender    *string  `json:"sender"`
	Recipient *string  `json:"recipient"`
	Amount    *float64 `json:"amount"`
}

func (r transactionRequest) validate() error {
	if r.Sender == nil || r.Recipient == nil || r.Amount == nil {
		return fmt.Errorf("sender, recipient and amount are required")
	}
	return nil
}

// registerRequest is the POST /nodes/register body.
type registerRequest struct {
	Nodes []string `json:"nodes"`
}

type mineResponse struct {
	Message      string              `json:"message"`
	Index        uint64              `json:"index"`
	Transactions []chain.Transaction `json:"transactions"`
	Proof        int64               `json:"proof"`
	PreviousHash string              `json:"previous_hash"`
}

type chainResponse struct {
	Chain  []chain.Block `json:"chain"`
	Length int           `json:"length"`
}

type registerResponse struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolveResponse struct {
	Message  string        `json:"message"`
	NewChain []chain.Block `json:"new_chain"`
}

// mine runs the proof-of-work search against the last block, rewards the node
// for finding it and seals the pending transactions into a new block.
func (n *Node) mine(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		last, err := n.Ledger.LastBlock()
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), n.MineTimeout)
		defer cancel()

		proof, err := chain.Solve(ctx, last.Proof)
		if err != nil {
			log.Warn("Mining cancelled", "error", err)
			writeError(w, log, http.StatusServiceUnavailable, "mining cancelled before a proof was found")
			return
		}

		n.Ledger.NewTransaction(MiningRewardSender, n.NodeID, MiningRewardAmount)
		block := n.Ledger.SealBlock(proof, "")
		n.Counters.BlocksMined.Inc()
		log.Info("New block sealed", "index", block.Index, "proof", block.Proof)

		writeJSON(w, log, http.StatusOK, mineResponse{
			Message:      "New Block Forged",
			Index:        block.Index,
			Transactions: block.Transactions,
			Proof:        block.Proof,
			PreviousHash: block.PreviousHash,
		})
	}
}

func (n *Node) newTransaction(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer req.Body.Close()

		var request transactionRequest
		if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
			writeError(w, log, http.StatusBadRequest, fmt.Sprintf("failed to parse transaction: %v", err))
			return
		}
		if err := request.validate(); err != nil {
			writeError(w, log, http.StatusBadRequest, err.Error())
			return
		}

		index := n.Ledger.NewTransaction(*request.Sender, *request.Recipient, *request.Amount)
		log.Debug("Transaction buffered", "sender", *request.Sender, "recipient", *request.Recipient, "index", index)

		writeJSON(w, log, http.StatusCreated, map[string]string{
			"message": fmt.Sprintf("Transaction will be added to block %d", index),
		})
	}
}

func (n *Node) fullChain(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		blocks := n.Ledger.Blocks()
		writeJSON(w, log, http.StatusOK, chainResponse{Chain: blocks, Length: len(blocks)})
	}
}

func (n *Node) registerNodes(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer req.Body.Close()

		var request registerRequest
		if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
			writeError(w, log, http.StatusBadRequest, fmt.Sprintf("failed to parse node list: %v", err))
			return
		}
		if len(request.Nodes) == 0 {
			writeError(w, log, http.StatusBadRequest, "please supply a non-empty list of nodes")
			return
		}

		for _, address := range request.Nodes {
			identity, err := n.Registry.Register(address)
			if err != nil {
				writeError(w, log, http.StatusBadRequest, err.Error())
				return
			}
			log.Info("Peer registered", "peer", identity)
		}

		writeJSON(w, log, http.StatusCreated, registerResponse{
			Message:    "New nodes have been added",
			TotalNodes: n.Registry.List(),
		})
	}
}

func (n *Node) resolveConflicts(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		replaced, err := n.Resolver.Resolve(req.Context(), n.Registry.List())
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err.Error())
			return
		}

		message := "Our chain is authoritative"
		if replaced {
			message = "Our chain was replaced"
			n.Counters.ConsensusReplacements.Inc()
		}

		writeJSON(w, log, http.StatusOK, resolveResponse{Message: message, NewChain: n.Ledger.Blocks()})
	}
}
