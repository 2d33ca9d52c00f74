package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics exposes counters/histograms for the chat endpoint.
type ChatMetrics struct {
	requestsTotal *prometheus.CounterVec
	actionsTotal  *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	replyDuration prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Chat messages answered, by classified intent",
		}, []string{"intent"}),
		actionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "chat",
			Name:      "actions_total",
			Help:      "Actions handed back to the caller",
		}, []string{"action"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "chat",
			Name:      "failures_total",
			Help:      "Chat requests answered with the apology payload",
		}, []string{"reason"}),
		replyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "chat",
			Name:      "reply_duration_seconds",
			Help:      "Time spent classifying and rendering a reply",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.actionsTotal, m.failuresTotal, m.replyDuration)
	return m
}

// ObserveReply records one answered message. action may be empty.
func (m *ChatMetrics) ObserveReply(intent, action string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(intent).Inc()
	if action != "" {
		m.actionsTotal.WithLabelValues(action).Inc()
	}
	m.replyDuration.Observe(d.Seconds())
}

func (m *ChatMetrics) ObserveFailure(reason string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(reason).Inc()
}
