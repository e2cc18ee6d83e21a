// Package observability provides Prometheus metrics for the hesap daemon.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
)

// Metrics groups the daemon collectors. Each instance owns its registry so
// several daemons (or tests) can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	// ButtonPressesTotal counts handled presses by button class.
	ButtonPressesTotal *prometheus.CounterVec

	// ErrorsTotal counts presses that moved the display to the error sentinel.
	ErrorsTotal *prometheus.CounterVec

	// EventSubscribers tracks open /events streams.
	EventSubscribers prometheus.Gauge
}

// NewMetrics creates and registers the daemon collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ButtonPressesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hesap_button_presses_total",
				Help: "Button presses handled",
			},
			[]string{"class"},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hesap_errors_total",
				Help: "Presses that ended in the error display",
			},
			[]string{"kind"},
		),
		EventSubscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hesap_event_subscribers",
				Help: "Active event stream subscribers",
			},
		),
	}

	m.registry.MustRegister(
		m.ButtonPressesTotal,
		m.ErrorsTotal,
		m.EventSubscribers,
		collectors.NewGoCollector(),
	)

	return m
}

// ObservePress records one press and, if it entered the error phase, the error.
func (m *Metrics) ObservePress(b calculator.Button, before, after calculator.State) {
	if m == nil {
		return
	}
	m.ButtonPressesTotal.WithLabelValues(string(b.Class())).Inc()
	if !before.IsError() && after.IsError() {
		kind := "overflow"
		if dividesByZero(b, before) {
			kind = "division_by_zero"
		}
		m.ErrorsTotal.WithLabelValues(kind).Inc()
	}
}

// dividesByZero reports whether pressing b on s resolves a pending division
// whose right operand is 0.
func dividesByZero(b calculator.Button, s calculator.State) bool {
	if s.Operation != calculator.OpDivide {
		return false
	}
	resolves := b == calculator.ButtonEquals || (b.IsOperator() && !s.AwaitingEntry)
	return resolves && calculator.Parse(s.Value) == 0
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
