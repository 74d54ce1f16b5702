package memarena

import "github.com/prometheus/client_golang/prometheus"

// Collector exports arena statistics as Prometheus gauges. It reads through
// a snapshot function so the arena's single-owner contract is preserved:
// pass Arena.Metrics when the owner also runs the scrape, or
// SafeArena.Metrics when scraping happens concurrently.
type Collector struct {
	metrics func() ArenaMetrics

	size        *prometheus.Desc
	allocated   *prometheus.Desc
	reserved    *prometheus.Desc
	remaining   *prometheus.Desc
	blocks      *prometheus.Desc
	utilization *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector for one arena. The arena label
// distinguishes arenas registered in the same registry.
func NewCollector(arena string, metrics func() ArenaMetrics) *Collector {
	labels := prometheus.Labels{"arena": arena}
	return &Collector{
		metrics: metrics,
		size: prometheus.NewDesc("memarena_active_bytes",
			"Bytes handed out in the active generation.", nil, labels),
		allocated: prometheus.NewDesc("memarena_allocated_bytes",
			"Bytes handed out across the active and frozen generations.", nil, labels),
		reserved: prometheus.NewDesc("memarena_reserved_bytes",
			"Total block capacity across both generations.", nil, labels),
		remaining: prometheus.NewDesc("memarena_remaining_bytes",
			"Unused capacity of the current block.", nil, labels),
		blocks: prometheus.NewDesc("memarena_blocks",
			"Number of blocks per generation.", []string{"generation"}, labels),
		utilization: prometheus.NewDesc("memarena_utilization_ratio",
			"Allocated bytes as a fraction of reserved bytes.", nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.allocated
	ch <- c.reserved
	ch <- c.remaining
	ch <- c.blocks
	ch <- c.utilization
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.metrics()
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(m.Size))
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.GaugeValue, float64(m.AllocatedSize))
	ch <- prometheus.MustNewConstMetric(c.reserved, prometheus.GaugeValue, float64(m.ReservedSize))
	ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, float64(m.Remaining))
	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(m.ActiveBlocks), "active")
	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(m.FrozenBlocks), "frozen")
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
}
