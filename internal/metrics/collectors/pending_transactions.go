package collectors

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/liftedinit/chaind/internal/chain"
)

type PendingTransactionsCollector struct {
	ledger  *chain.Ledger
	pending *prometheus.Desc
}

func NewPendingTransactionsCollector(ledger *chain.Ledger) *PendingTransactionsCollector {
	return &PendingTransactionsCollector{
		ledger: ledger,
		pending: prometheus.NewDesc(
			prometheus.BuildFQName("chaind", "transactions", "pending"),
			"Number of transactions buffered for the next block",
			nil,
			nil,
		),
	}
}

func (c *PendingTransactionsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
}

func (c *PendingTransactionsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(c.ledger.PendingCount()))
}
