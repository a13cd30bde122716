// Package metric provides Prometheus metrics for KeyWire.
package metric

import "github.com/prometheus/client_golang/prometheus"

// StoreStats is the view of the store the collector reads.
type StoreStats interface {
	Len() int
	Shards() int
}

// StoreCollector collects store statistics on scrape.
type StoreCollector struct {
	stats StoreStats

	keysDesc   *prometheus.Desc
	shardsDesc *prometheus.Desc
}

// NewStoreCollector creates a collector over the given store.
func NewStoreCollector(stats StoreStats) *StoreCollector {
	return &StoreCollector{
		stats: stats,
		keysDesc: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "store", "keys"),
			"Number of keys currently stored",
			nil, nil,
		),
		shardsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "store", "shards"),
			"Shard count of the backing map",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keysDesc
	ch <- c.shardsDesc
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keysDesc, prometheus.GaugeValue, float64(c.stats.Len()))
	ch <- prometheus.MustNewConstMetric(c.shardsDesc, prometheus.GaugeValue, float64(c.stats.Shards()))
}
