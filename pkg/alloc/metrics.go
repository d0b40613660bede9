package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

type statsSource interface {
	Stats() Stats
}

// NewCollector exports the free set of source as gauges labelled with name.
func NewCollector(name string, source statsSource) *Collector {
	labels := prometheus.Labels{"allocator": name}
	return &Collector{
		source:    source,
		intervals: prometheus.NewDesc("idalloc_free_intervals", "Number of free intervals.", nil, labels),
		free:      prometheus.NewDesc("idalloc_free_ids", "Number of free ids.", nil, labels),
		available: prometheus.NewDesc("idalloc_can_allocate", "1 if at least one id is free.", nil, labels),
	}
}

type Collector struct {
	source    statsSource
	intervals *prometheus.Desc
	free      *prometheus.Desc
	available *prometheus.Desc
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.intervals
	ch <- c.free
	ch <- c.available
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	available := 0.0
	if s.Intervals > 0 {
		available = 1
	}
	ch <- prometheus.MustNewConstMetric(c.intervals, prometheus.GaugeValue, float64(s.Intervals))
	ch <- prometheus.MustNewConstMetric(c.free, prometheus.GaugeValue, s.Free)
	ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, available)
}
