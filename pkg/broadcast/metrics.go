package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for a Broadcaster.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Subscribers  prometheus.Gauge
	Published    prometheus.Counter
	Delivered    prometheus.Counter
	Dropped      prometheus.Counter
	Probes       *prometheus.CounterVec
	Evicted      prometheus.Counter
	Unsubscribed prometheus.Counter
}

// NewMetrics creates the broadcaster collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Subscribers: f.NewGauge(prometheus.GaugeOpts{
			Name: "broadcast_subscribers",
			Help: "Number of currently registered subscribers",
		}),
		Published: f.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_published_total",
			Help: "Total events published",
		}),
		Delivered: f.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_frames_delivered_total",
			Help: "Total frames enqueued to subscribers by publish",
		}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_frames_dropped_total",
			Help: "Total frames dropped because a subscriber queue was full",
		}),
		Probes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "broadcast_probes_total",
			Help: "Liveness probes by result (accepted/rejected)",
		}, []string{"result"}),
		Evicted: f.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_evicted_total",
			Help: "Total subscribers evicted by the liveness sweep",
		}),
		Unsubscribed: f.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_unsubscribed_total",
			Help: "Total subscribers removed by explicit unsubscribe",
		}),
	}
}

func (m *Metrics) setSubscribers(n int) {
	if m == nil {
		return
	}
	m.Subscribers.Set(float64(n))
}

func (m *Metrics) published(delivered, dropped int) {
	if m == nil {
		return
	}
	m.Published.Inc()
	m.Delivered.Add(float64(delivered))
	m.Dropped.Add(float64(dropped))
}

func (m *Metrics) swept(accepted, rejected int) {
	if m == nil {
		return
	}
	m.Probes.WithLabelValues("accepted").Add(float64(accepted))
	m.Probes.WithLabelValues("rejected").Add(float64(rejected))
	m.Evicted.Add(float64(rejected))
}

func (m *Metrics) unsubscribed() {
	if m == nil {
		return
	}
	m.Unsubscribed.Inc()
}
