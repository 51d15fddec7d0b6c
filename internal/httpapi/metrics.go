package httpapi

import (
	"net/http"

	"uclaverify/backend/internal/mailer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// dispatchMetrics owns a private registry so each API can be built in
// tests without colliding on the global one.
type dispatchMetrics struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
}

func newDispatchMetrics() *dispatchMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dispatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_emails_total",
			Help: "Verification email sends by outcome.",
		},
		[]string{"outcome"},
	)
	registry.MustRegister(dispatches)

	return &dispatchMetrics{
		registry:   registry,
		dispatches: dispatches,
	}
}

func (m *dispatchMetrics) observe(err error) {
	outcome := "sent"
	if err != nil {
		outcome = mailer.KindOf(err)
	}
	m.dispatches.WithLabelValues(outcome).Inc()
}

func (m *dispatchMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
