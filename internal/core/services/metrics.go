package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sufield/trustset/internal/core/domain"
)

var (
	// Enumeration pass metrics
	enumerationPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustset_enumeration_passes_total",
		Help: "Total number of single-domain enumeration passes",
	}, []string{"domain", "disposition"})

	matchedCertificates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustset_certificates_matched_total",
		Help: "Total number of certificates matched during enumeration",
	}, []string{"domain", "disposition"})

	storeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustset_store_failures_total",
		Help: "Total number of hard trust store failures",
	}, []string{"domain"})

	enumerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trustset_enumeration_duration_seconds",
		Help:    "Duration of single-domain enumeration passes",
		Buckets: prometheus.DefBuckets,
	}, []string{"domain", "disposition"})
)

type passTimer struct {
	timer *prometheus.Timer
}

func newPassTimer(sd domain.SettingsDomain, want domain.Disposition) passTimer {
	return passTimer{
		timer: prometheus.NewTimer(enumerationDuration.WithLabelValues(sd.String(), want.String())),
	}
}

func (t passTimer) done() {
	t.timer.ObserveDuration()
}
