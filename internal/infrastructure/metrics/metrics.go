package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the Prometheus collectors of the service.
type Metrics struct {
	Interactions     *prometheus.CounterVec
	MirrorRecoveries prometheus.Counter
	BroadcastDropped prometheus.Counter
	Subscribers      prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interactions_total",
			Help: "Recorded interactions by transition type and outcome.",
		}, []string{"type", "outcome"}),
		MirrorRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mirror_recoveries_total",
			Help: "Mirror loads that discarded an unparseable file or invalid entries.",
		}),
		BroadcastDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_dropped_total",
			Help: "Events dropped because a subscriber queue was full.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "realtime_subscribers",
			Help: "Currently connected real-time subscribers.",
		}),
	}
	reg.MustRegister(m.Interactions, m.MirrorRecoveries, m.BroadcastDropped, m.Subscribers)
	return m
}

// ObserveInteraction counts one interaction call.
func (m *Metrics) ObserveInteraction(kind, outcome string) {
	if m == nil {
		return
	}
	m.Interactions.WithLabelValues(kind, outcome).Inc()
}

// ObserveMirrorRecovery counts one mirror load that discarded unusable data.
func (m *Metrics) ObserveMirrorRecovery() {
	if m == nil {
		return
	}
	m.MirrorRecoveries.Inc()
}

// ObserveDropped counts one event dropped for a slow subscriber.
func (m *Metrics) ObserveDropped() {
	if m == nil {
		return
	}
	m.BroadcastDropped.Inc()
}

// SetSubscribers records the number of connected subscribers.
func (m *Metrics) SetSubscribers(n int) {
	if m == nil {
		return
	}
	m.Subscribers.Set(float64(n))
}
