// Package metrics provides observability for the address validation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the validation pipeline.
// Methods are nil-safe so components can run without metrics in tests.
type Metrics struct {
	ValidateRequests *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	QuotaExceeded    prometheus.Counter
	ProviderLatency  prometheus.Histogram
	ProviderErrors   *prometheus.CounterVec
	CorrectedTotal   prometheus.Counter
}

// New creates and registers all pipeline metrics.
func New() *Metrics {
	return &Metrics{
		ValidateRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "addrgate_validate_requests_total",
			Help: "Validation requests by terminal outcome",
		}, []string{"outcome"}), // outcome: invalid_input, cache_hit, match, no_match, quota_exceeded, provider_error, provider_timeout

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "addrgate_cache_lookups_total",
			Help: "Address cache lookups by result",
		}, []string{"result"}), // result: hit, miss, error

		QuotaExceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "addrgate_quota_exceeded_total",
			Help: "Requests rejected because the daily provider quota was exhausted",
		}),

		ProviderLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "addrgate_provider_lookup_duration_seconds",
			Help:    "Duration of external provider lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "addrgate_provider_errors_total",
			Help: "Provider lookup failures by category",
		}, []string{"category"}),

		CorrectedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "addrgate_corrected_addresses_total",
			Help: "Confident provider matches whose delivery line differed from the input",
		}),
	}
}

// IncrementOutcome records a terminal request outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.ValidateRequests.WithLabelValues(outcome).Inc()
	}
}

// IncrementCacheLookup records a cache lookup result.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// IncrementQuotaExceeded records a quota rejection.
func (m *Metrics) IncrementQuotaExceeded() {
	if m != nil {
		m.QuotaExceeded.Inc()
	}
}

// ObserveProviderLatency records the duration of one provider lookup.
func (m *Metrics) ObserveProviderLatency(d time.Duration) {
	if m != nil {
		m.ProviderLatency.Observe(d.Seconds())
	}
}

// IncrementProviderError records a provider failure by category.
func (m *Metrics) IncrementProviderError(category string) {
	if m != nil {
		m.ProviderErrors.WithLabelValues(category).Inc()
	}
}

// IncrementCorrected records a corrected-address observation.
func (m *Metrics) IncrementCorrected() {
	if m != nil {
		m.CorrectedTotal.Inc()
	}
}
