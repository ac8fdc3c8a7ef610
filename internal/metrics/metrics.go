// Package metrics exposes Prometheus collectors for solver progress: nodes
// explored, incumbent updates, the current incumbent value, and the LP
// value of the most recently solved node. A Collector implements
// gap.Observer so it plugs into gap.Driver without the driver depending on
// Prometheus directly.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector is a gap.Observer backed by Prometheus metrics. NewCollector
// registers its metrics, so calling it twice against the same registry
// panics (the metric names collide), matching normal prometheus
// MustRegister usage.
type Collector struct {
	nodesExplored    prometheus.Counter
	incumbentUpdates prometheus.Counter
	incumbentValue   prometheus.Gauge
	lastNodeLPValue  prometheus.Gauge
}

// NewCollector builds and registers a Collector's metrics against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		nodesExplored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gap_solve",
			Name:      "nodes_explored_total",
			Help:      "Number of branch-and-bound nodes solved.",
		}),
		incumbentUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gap_solve",
			Name:      "incumbent_updates_total",
			Help:      "Number of times the incumbent objective improved.",
		}),
		incumbentValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gap_solve",
			Name:      "incumbent_value",
			Help:      "Current best known objective value.",
		}),
		lastNodeLPValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gap_solve",
			Name:      "last_node_lp_value",
			Help:      "LP objective value of the most recently solved node.",
		}),
	}
	reg.MustRegister(c.nodesExplored, c.incumbentUpdates, c.incumbentValue, c.lastNodeLPValue)
	return c
}

// NodeSolved implements gap.Observer.
func (c *Collector) NodeSolved(nodeID, parentID int64, lpValue float64, certified bool) {
	c.nodesExplored.Inc()
	c.lastNodeLPValue.Set(lpValue)
}

// IncumbentUpdated implements gap.Observer.
func (c *Collector) IncumbentUpdated(value float64) {
	c.incumbentUpdates.Inc()
	c.incumbentValue.Set(value)
}
