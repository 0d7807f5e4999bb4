package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics содержит метрики workflow оформления заказа.
type CheckoutMetrics struct {
	// Счётчики исходов оформления
	submissionsStarted   prometheus.Counter
	submissionsCompleted prometheus.Counter
	headerFailures       prometheus.Counter
	partialFailures      prometheus.Counter

	// Запросы регистрации позиций по результату
	itemRequests *prometheus.CounterVec

	// Время полного оформления
	submissionDuration prometheus.Histogram
}

// NewCheckoutMetrics создаёт метрики оформления в default registerer.
func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		submissionsStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_checkout_submissions_started_total",
			Help: "Total number of order submissions started",
		}),
		submissionsCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_checkout_submissions_completed_total",
			Help: "Total number of order submissions completed successfully",
		}),
		headerFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_checkout_header_failures_total",
			Help: "Total number of submissions aborted on order header creation",
		}),
		partialFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_checkout_partial_failures_total",
			Help: "Total number of submissions with the header created but items missing",
		}),
		itemRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "pedidos_checkout_item_requests_total",
			Help: "Total number of order item registration requests grouped by result",
		}, []string{"result"}),
		submissionDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pedidos_checkout_submission_duration_seconds",
			Help:    "Duration of the full order submission workflow in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordSubmissionStarted увеличивает счётчик начатых оформлений.
func (m *CheckoutMetrics) RecordSubmissionStarted() {
	m.submissionsStarted.Inc()
}

// RecordSubmissionCompleted увеличивает счётчик успешных оформлений.
func (m *CheckoutMetrics) RecordSubmissionCompleted() {
	m.submissionsCompleted.Inc()
}

// RecordHeaderFailure увеличивает счётчик оформлений, сорвавшихся на заголовке.
func (m *CheckoutMetrics) RecordHeaderFailure() {
	m.headerFailures.Inc()
}

// RecordPartialFailure увеличивает счётчик частично неуспешных оформлений.
func (m *CheckoutMetrics) RecordPartialFailure() {
	m.partialFailures.Inc()
}

// RecordItemRequest учитывает один запрос регистрации позиции.
func (m *CheckoutMetrics) RecordItemRequest(result string) {
	m.itemRequests.WithLabelValues(result).Inc()
}

// RecordSubmissionDuration записывает длительность оформления.
func (m *CheckoutMetrics) RecordSubmissionDuration(duration time.Duration) {
	m.submissionDuration.Observe(duration.Seconds())
}
