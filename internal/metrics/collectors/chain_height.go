package collectors

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/liftedinit/chaind/internal/chain"
)

type ChainHeightCollector struct {
	ledger *chain.Ledger
	height *prometheus.Desc
}

func NewChainHeightCollector(ledger *chain.Ledger) *ChainHeightCollector {
	return &ChainHeightCollector{
		ledger: ledger,
		height: prometheus.NewDesc(
			prometheus.BuildFQName("chaind", "chain", "height"),
			"Number of sealed blocks in the local chain",
			nil,
			nil,
		),
	}
}

func (c *ChainHeightCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.height
}

func (c *ChainHeightCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(c.ledger.Length()))
}
