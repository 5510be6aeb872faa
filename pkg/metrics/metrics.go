package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NoteOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "noteworx", Name: "note_operations_total", Help: "Number of note repository operations by operation and result."},
		[]string{"op", "result"},
	)
	NoteOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "noteworx", Name: "note_operation_duration_seconds", Help: "Latency of note repository operations.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "noteworx", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "noteworx", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(NoteOperations)
	reg.MustRegister(NoteOperationDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

// WriteTextfile registers the collectors on a private registry and writes
// them in the node_exporter textfile format. Used by one-shot CLI commands.
func WriteTextfile(path string) error {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)
	return prometheus.WriteToTextfile(path, reg)
}
