package rest

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "printa_dashboard"

// Collector is a prometheus.Collector reporting query cache and mutation activity.
type Collector struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	sharedFetches *prometheus.CounterVec
	invalidated   *prometheus.CounterVec
	refetches     *prometheus.CounterVec
	mutations     *prometheus.CounterVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "rest",
			Name:      name,
			Help:      help,
		}, labels)
	}
	return &Collector{
		cacheHits:     counter("cache_hits_total", "Queries answered from the cache.", "endpoint"),
		cacheMisses:   counter("cache_misses_total", "Queries that needed a network read.", "endpoint"),
		fetches:       counter("fetches_total", "Network reads issued for queries.", "endpoint", "outcome"),
		sharedFetches: counter("shared_fetches_total", "Queries that joined an in-flight read.", "endpoint"),
		invalidated:   counter("invalidated_entries_total", "Cache entries made stale by a mutation.", "endpoint"),
		refetches:     counter("refetches_total", "Background refetches of subscribed entries.", "endpoint"),
		mutations:     counter("mutations_total", "Mutations by outcome.", "endpoint", "outcome"),
	}
}

func (c *Collector) all() []*prometheus.CounterVec {
	return []*prometheus.CounterVec{
		c.cacheHits, c.cacheMisses, c.fetches, c.sharedFetches,
		c.invalidated, c.refetches, c.mutations,
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, v := range c.all() {
		v.Describe(ch)
	}
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, v := range c.all() {
		v.Collect(ch)
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
