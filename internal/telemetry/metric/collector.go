// Package metric provides Prometheus metrics for the oatable server.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/oatable-go/pkg/oatable"
)

// StatsSource yields a point-in-time view of the hash table counters.
type StatsSource interface {
	TableStats() oatable.Stats
}

// TableCollector exposes hash table statistics as Prometheus metrics.
//
// Values are read from the source on every scrape, so the collector
// never lags behind the table.
type TableCollector struct {
	source StatsSource

	size       *prometheus.Desc
	count      *prometheus.Desc
	loadFactor *prometheus.Desc
	probes     *prometheus.Desc
	expansions *prometheus.Desc
}

// NewTableCollector creates a collector reading from source.
func NewTableCollector(source StatsSource) *TableCollector {
	return &TableCollector{
		source: source,
		size: prometheus.NewDesc(
			"oatable_table_size",
			"Current number of slots in the table.",
			nil, nil),
		count: prometheus.NewDesc(
			"oatable_table_entries",
			"Current number of occupied slots.",
			nil, nil),
		loadFactor: prometheus.NewDesc(
			"oatable_table_load_factor",
			"Ratio of occupied slots to table size.",
			nil, nil),
		probes: prometheus.NewDesc(
			"oatable_table_probes_total",
			"Lifetime slot inspections across all operations.",
			nil, nil),
		expansions: prometheus.NewDesc(
			"oatable_table_expansions_total",
			"Lifetime table growth events.",
			nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *TableCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.count
	ch <- c.loadFactor
	ch <- c.probes
	ch <- c.expansions
}

// Collect implements prometheus.Collector.
func (c *TableCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.TableStats()

	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(stats.TableSize))
	ch <- prometheus.MustNewConstMetric(c.count, prometheus.GaugeValue, float64(stats.Count))
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, stats.LoadFactor)
	ch <- prometheus.MustNewConstMetric(c.probes, prometheus.CounterValue, float64(stats.Probes))
	ch <- prometheus.MustNewConstMetric(c.expansions, prometheus.CounterValue, float64(stats.Expansions))
}
