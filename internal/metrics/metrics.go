package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ReasonValidation = "validation"
	ReasonDuplicate  = "duplicate"
)

// Metrics holds the Prometheus collectors of the registration API.
type Metrics struct {
	RegistrationsCreated  prometheus.Counter
	RegistrationsRejected *prometheus.CounterVec
	StorageErrors         *prometheus.CounterVec
	NotificationsFailed   *prometheus.CounterVec
	Exports               prometheus.Counter

	registry *prometheus.Registry
}

// New creates the collectors on a dedicated registry so tests can build as
// many instances as they need.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		RegistrationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "registration_api_registrations_created_total",
			Help: "Total number of registrations persisted",
		}),
		RegistrationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_api_registrations_rejected_total",
			Help: "Total number of registration submissions rejected, by reason",
		}, []string{"reason"}),
		StorageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_api_storage_errors_total",
			Help: "Total number of storage failures surfaced to callers, by operation",
		}, []string{"op"}),
		NotificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_api_notifications_failed_total",
			Help: "Total number of failed notification deliveries, by sink",
		}, []string{"sink"}),
		Exports: factory.NewCounter(prometheus.CounterOpts{
			Name: "registration_api_exports_total",
			Help: "Total number of CSV exports served",
		}),
		registry: reg,
	}
}

func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

func (m *Metrics) IncrementRejected(reason string) {
	if m == nil {
		return
	}
	m.RegistrationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementStorageErrors(op string) {
	if m == nil {
		return
	}
	m.StorageErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) IncrementNotificationFailures(sink string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(sink).Inc()
}

func (m *Metrics) IncrementExports() {
	if m == nil {
		return
	}
	m.Exports.Inc()
}

// Handler exposes the collectors together with the Go runtime metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
