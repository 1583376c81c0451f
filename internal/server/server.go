package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/liftedinit/chaind/internal/chain"
	"github.com/liftedinit/chaind/internal/consensus"
	"github.com/liftedinit/chaind/internal/metrics"
	"github.com/liftedinit/chaind/internal/peers"
)

const (
	headerContentType = "Content-Type"
	applicationJSON   = "application/json"

	// MiningRewardSender marks a reward transaction as a mint rather than a
	// transfer between accounts.
	MiningRewardSender = "0"
	MiningRewardAmount = 1
)

var allowedCORSHeaders = []string{"Accept", "Accept-Language", "Content-Language", "Origin", headerContentType}

// Node bundles the components the HTTP surface operates on. The ledger is an
// explicitly owned instance whose lifecycle is tied to the serve command,
// never ambient process state.
type Node struct {
	Ledger      *chain.Ledger
	Registry    *peers.Registry
	Resolver    *consensus.Resolver
	Counters    *metrics.Counters
	NodeID      string
	MineTimeout time.Duration
}

// NewRouter builds the REST API for the node.
func NewRouter(node *Node, log *slog.Logger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(http.NotFound)

	r.HandleFunc("/mine", node.mine(log)).Methods(http.MethodGet)
	r.HandleFunc("/transactions/new", node.newTransaction(log)).Methods(http.MethodPost)
	r.HandleFunc("/chain", node.fullChain(log)).Methods(http.MethodGet)
	r.HandleFunc("/nodes/register", node.registerNodes(log)).Methods(http.MethodPost)
	r.HandleFunc("/nodes/resolve", node.resolveConflicts(log)).Methods(http.MethodGet)

	return handlers.CORS(handlers.AllowedHeaders(allowedCORSHeaders))(r)
}

// NewServer wraps the node's router in an http.Server. The write timeout
// leaves headroom above the mining timeout, which bounds the slowest handler.
func NewServer(addr string, node *Node, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      node.MineTimeout + 5*time.Second,
		IdleTimeout:       30 * time.Second,
		Handler:           NewRouter(node, log),
	}
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, payload any) {
	w.Header().Set(headerContentType, applicationJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn("Failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, message string) {
	writeJSON(w, log, status, map[string]string{"error": message})
}
