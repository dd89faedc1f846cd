package live

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// liveMetrics holds the Prometheus metrics for one registry.
type liveMetrics struct {
	activeSessions   prometheus.Gauge
	sessionsTotal    prometheus.Counter
	eventsTotal      *prometheus.CounterVec
	eventErrors      *prometheus.CounterVec
	patchOps         *prometheus.CounterVec
	framesSent       prometheus.Counter
	dispatchDuration prometheus.Histogram
}

// The default registerer is shared by every server in the process, so its
// metrics are created once.
var (
	defaultMetrics     *liveMetrics
	defaultMetricsOnce sync.Once
)

func metricsFor(reg prometheus.Registerer, namespace string) *liveMetrics {
	if reg != nil {
		return initMetrics(reg, namespace)
	}
	defaultMetricsOnce.Do(func() {
		defaultMetrics = initMetrics(prometheus.DefaultRegisterer, namespace)
	})
	return defaultMetrics
}

func initMetrics(reg prometheus.Registerer, namespace string) *liveMetrics {
	factory := promauto.With(reg)

	return &liveMetrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "active_sessions",
			Help:      "Number of connected live sessions",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total number of live sessions started",
		}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total number of client events dispatched",
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "event_errors_total",
			Help:      "Total number of rejected or failed client events",
		}, []string{"reason"}),

		patchOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "patch_ops_total",
			Help:      "Total number of patch operations sent to clients",
		}, []string{"op"}),

		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "frames_sent_total",
			Help:      "Total number of frames written to clients",
		}),

		dispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching one client event, including reactive updates",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *liveMetrics) sessionStarted() {
	m.sessionsTotal.Inc()
	m.activeSessions.Inc()
}

func (m *liveMetrics) sessionEnded() {
	m.activeSessions.Dec()
}

func (m *liveMetrics) recordDispatch(eventType string, d time.Duration) {
	m.eventsTotal.WithLabelValues(eventType).Inc()
	m.dispatchDuration.Observe(d.Seconds())
}

func (m *liveMetrics) recordError(reason string) {
	m.eventErrors.WithLabelValues(reason).Inc()
}

func (m *liveMetrics) recordFrame(f *Frame) {
	m.framesSent.Inc()
	for _, op := range f.Ops {
		m.patchOps.WithLabelValues(op.Op).Inc()
	}
}
