package pool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports a Pool's counters as Prometheus metrics. Values are read
// from the pool on every scrape.
type Collector struct {
	pool *Pool

	gets      *prometheus.Desc
	puts      *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	discards  *prometheus.Desc
	allocated *prometheus.Desc
	reused    *prometheus.Desc
	oversize  *prometheus.Desc
	hitRate   *prometheus.Desc
}

// NewCollector returns a collector for p. Metric names are
// <namespace>_buffer_pool_<name>.
func NewCollector(p *Pool, namespace string) *Collector {
	const subsystem = "buffer_pool"
	size := []string{"size"}
	desc := func(name, help string, labels []string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, labels, nil)
	}
	return &Collector{
		pool:      p,
		gets:      desc("gets_total", "Total number of buffer Get operations", size),
		puts:      desc("puts_total", "Total number of buffer Put operations", size),
		hits:      desc("hits_total", "Total number of buffer pool hits (reuse)", size),
		misses:    desc("misses_total", "Total number of buffer pool misses (new allocation)", size),
		discards:  desc("discards_total", "Total number of buffers discarded (too small for their class)", size),
		allocated: desc("bytes_allocated_total", "Total bytes allocated", size),
		reused:    desc("bytes_reused_total", "Total bytes reused from pool", size),
		oversize:  desc("oversize_total", "Total Get operations above the largest size class", nil),
		hitRate:   desc("global_hit_rate", "Buffer pool hit rate across all sizes (0-100%)", nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.gets
	ch <- c.puts
	ch <- c.hits
	ch <- c.misses
	ch <- c.discards
	ch <- c.allocated
	ch <- c.reused
	ch <- c.oversize
	ch <- c.hitRate
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.pool.Metrics()
	for _, cm := range m.Classes {
		label := sizeLabel(cm.Size)
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), label)
		}
		counter(c.gets, cm.Gets)
		counter(c.puts, cm.Puts)
		counter(c.hits, cm.Hits)
		counter(c.misses, cm.Misses)
		counter(c.discards, cm.Discards)
		counter(c.allocated, cm.Allocated)
		counter(c.reused, cm.Reused)
	}
	ch <- prometheus.MustNewConstMetric(c.oversize, prometheus.CounterValue, float64(m.Oversize))
	ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, m.HitRate)
}
