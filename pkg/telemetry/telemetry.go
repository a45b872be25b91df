// Package telemetry defines a sink interface for the slow-path events CCL's
// containers can emit: hashtable rehash, handle-manager page growth, ECS
// archetype creation, memory-pool page growth. A no-op sink is used when
// metrics are disabled, a real Prometheus sink when a registry is supplied.
// Every method is cheap enough to call unconditionally from the no-op sink
// so callers never have to branch on "is metrics enabled".
//
// © 2025 ccl authors. MIT License.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Sink receives slow-path container events. The Inc* counts are monotonic;
// the Set* gauges report a current value.
type Sink interface {
	IncRehash(component string)
	IncPageGrowth(component string)
	IncArchetypeCreated()
	SetEntityCount(n int)
	SetArchetypeCount(n int)
}

type noopSink struct{}

func (noopSink) IncRehash(string)       {}
func (noopSink) IncPageGrowth(string)   {}
func (noopSink) IncArchetypeCreated()   {}
func (noopSink) SetEntityCount(int)     {}
func (noopSink) SetArchetypeCount(int)  {}

// Noop is the zero-cost sink used when no registry is configured.
var Noop Sink = noopSink{}

// promSink is the real Prometheus-backed implementation: CounterVecs keyed
// by a "component" label, plus two bare gauges for registry-wide ECS shape.
type promSink struct {
	rehash      *prometheus.CounterVec
	pageGrowth  *prometheus.CounterVec
	archetypes  prometheus.Counter
	entityGauge prometheus.Gauge
	archGauge   prometheus.Gauge
}

// NewPrometheusSink registers CCL's metrics on reg and returns a Sink
// backed by it. Passing the same *prometheus.Registry to two NewPrometheus-
// Sink calls panics on duplicate registration, matching
// prometheus.Registry.MustRegister's own contract.
func NewPrometheusSink(reg *prometheus.Registry) Sink {
	s := &promSink{
		rehash: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ccl",
			Name:      "rehash_total",
			Help:      "Number of capacity-doubling rehashes/growths, by component.",
		}, []string{"component"}),
		pageGrowth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ccl",
			Name:      "page_growth_total",
			Help:      "Number of one-page growths, by component.",
		}, []string{"component"}),
		archetypes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ccl",
			Name:      "ecs_archetypes_created_total",
			Help:      "Number of ECS archetypes ever created.",
		}),
		entityGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ccl",
			Name:      "ecs_entities",
			Help:      "Current live entity count.",
		}),
		archGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ccl",
			Name:      "ecs_archetypes",
			Help:      "Current archetype count.",
		}),
	}
	reg.MustRegister(s.rehash, s.pageGrowth, s.archetypes, s.entityGauge, s.archGauge)
	return s
}

func (s *promSink) IncRehash(component string)     { s.rehash.WithLabelValues(component).Inc() }
func (s *promSink) IncPageGrowth(component string) { s.pageGrowth.WithLabelValues(component).Inc() }
func (s *promSink) IncArchetypeCreated()           { s.archetypes.Inc() }
func (s *promSink) SetEntityCount(n int)           { s.entityGauge.Set(float64(n)) }
func (s *promSink) SetArchetypeCount(n int)        { s.archGauge.Set(float64(n)) }
