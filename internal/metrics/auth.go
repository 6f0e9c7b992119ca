package metrics

import "github.com/prometheus/client_golang/prometheus"

// AuthEventsTotal counts register, login and token outcomes.
var AuthEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Authentication events by operation and outcome",
	},
	[]string{"op", "outcome"},
)

func init() {
	prometheus.MustRegister(AuthEventsTotal)
}

// AuthRecorder feeds AuthEventsTotal.
type AuthRecorder struct{}

// RecordAuth increments the counter for one outcome.
func (AuthRecorder) RecordAuth(op, outcome string) {
	AuthEventsTotal.WithLabelValues(op, outcome).Inc()
}
