package metrics

import "github.com/prometheus/client_golang/prometheus"

// Counters holds the event counters incremented by the HTTP surface. They are
// created unconditionally so handlers never nil-check; they are only exported
// when the metrics server registers them.
type Counters struct {
	BlocksMined           prometheus.Counter
	ConsensusReplacements prometheus.Counter
}

func NewCounters() *Counters {
	return &Counters{
		BlocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chaind",
			Subsystem: "blocks",
			Name:      "mined_total",
			Help:      "Total number of blocks mined by this node",
		}),
		ConsensusReplacements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chaind",
			Subsystem: "consensus",
			Name:      "replacements_total",
			Help:      "Total number of times consensus replaced the local chain",
		}),
	}
}

// Collectors returns the counters for registration with a metrics server.
func (c *Counters) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.BlocksMined, c.ConsensusReplacements}
}
