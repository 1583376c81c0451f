package peers

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Registry stores the set of known peer locations, keyed by their host:port
// identity. Registration is idempotent. There is no removal and no liveness
// tracking; a registered peer stays known until the process exits.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]struct{})}
}

// Register normalizes address to its host:port identity and adds it to the
// set. Both bare "host:port" and full URLs such as "http://host:port/path"
// are accepted; scheme and path are dropped. Returns the stored identity.
func (r *Registry) Register(address string) (string, error) {
	identity, err := normalize(address)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[identity] = struct{}{}
	return identity, nil
}

// List returns the registered identities in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]string, 0, len(r.nodes))
	for node := range r.nodes {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

func normalize(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "", fmt.Errorf("empty peer address")
	}
	if !strings.Contains(trimmed, "//") {
		trimmed = "//" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid peer address %q: %w", address, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("peer address %q has no host", address)
	}
	return parsed.Host, nil
}
