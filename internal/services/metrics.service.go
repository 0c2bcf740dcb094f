package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type PopularityMetrics struct {
	notifications *prometheus.CounterVec
	scanDuration  prometheus.Histogram
}

func NewPopularityMetrics(registerer prometheus.Registerer) *PopularityMetrics {
	notifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchly",
			Subsystem: "popularity",
			Name:      "notifications_total",
			Help:      "Popular user notifications attempted, by outcome.",
		},
		[]string{"status"},
	)
	scanDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchly",
		Subsystem: "popularity",
		Name:      "scan_duration_seconds",
		Help:      "Duration of popularity scan runs.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	return &PopularityMetrics{
		notifications: register(registerer, notifications),
		scanDuration:  register(registerer, scanDuration),
	}
}

// register returns the already registered collector when one with the same
// descriptor exists.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if registerer == nil {
		return collector
	}

	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}

	return collector
}

func (m *PopularityMetrics) observeNotification(status string) {
	m.notifications.WithLabelValues(status).Inc()
}

func (m *PopularityMetrics) observeScan(seconds float64) {
	m.scanDuration.Observe(seconds)
}
