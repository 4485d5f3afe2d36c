// Package metrics exposes Prometheus collectors for the evaluator core.
// The core itself never decides how metrics are exported; it only
// increments these counters, the same way packetd's processors record
// counters from inside hot packet-handling paths without owning the
// registry wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "byteeval"

var (
	// Evaluations counts every Evaluate call, labeled by evaluator kind
	// (single/sequence) and outcome (ok/discard/fail/error).
	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluator core invocations by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	// ScratchActivations counts how often the sequence evaluator had to
	// activate its working buffer because a filtered or resolved value
	// diverged from the provider's own bytes, or because a take behavior
	// drops matched bytes from the provider.
	ScratchActivations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scratch_activations_total",
			Help:      "Times the sequence evaluator activated its scratch buffer.",
		},
	)

	// Clones counts values the Processor cloned onto the heap, labeled by
	// why (forced allocation preference vs. overlap analysis).
	Clones = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clones_total",
			Help:      "Values cloned onto the heap by the Processor, by reason.",
		},
		[]string{"reason"},
	)
)

// ObserveOutcome records one evaluation's result.
func ObserveOutcome(kind string, outcome string) {
	Evaluations.WithLabelValues(kind, outcome).Inc()
}

// ObserveClone records one heap clone and why it happened.
func ObserveClone(reason string) {
	Clones.WithLabelValues(reason).Inc()
}

// ObserveScratchActivation records one scratch buffer activation.
func ObserveScratchActivation() {
	ScratchActivations.Inc()
}
