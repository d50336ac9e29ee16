// Package observability provides Prometheus instrumentation for the
// assistant, exposed as turn hooks so the core stays free of metrics code.
package observability

import (
	"context"
	"errors"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the assistant's Prometheus collectors.
type Metrics struct {
	turns           *prometheus.CounterVec
	turnDuration    *prometheus.HistogramVec
	gatewayDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procwise_turns_total",
				Help: "Total number of conversational turns",
			},
			[]string{"intent", "outcome"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "procwise_turn_duration_seconds",
				Help: "Duration of conversational turns",
			},
			[]string{"intent"},
		),
		gatewayDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "procwise_gateway_duration_seconds",
				Help: "Duration of completion gateway calls",
			},
		),
	}
	reg.MustRegister(m.turns, m.turnDuration, m.gatewayDuration)
	return m
}

// Hooks returns assistant hooks that record the metrics.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnTurnEnd: func(ctx context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(string(e.Intent), outcome(e.Err)).Inc()
			m.turnDuration.WithLabelValues(string(e.Intent)).Observe(e.Duration.Seconds())
		},
		OnGatewayCall: func(ctx context.Context, e *domain.GatewayEvent) {
			m.gatewayDuration.Observe(e.Duration.Seconds())
		},
	}
}

// outcome maps an error to the metric label identifying its failure kind.
func outcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, domain.ErrModelRefused):
		return "refused"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	}

	var gatewayErr *domain.GatewayError
	if errors.As(err, &gatewayErr) {
		return "gateway_" + string(gatewayErr.Cause)
	}
	var malformed *domain.MalformedError
	if errors.As(err, &malformed) {
		return "malformed"
	}
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		return "schema_violation"
	}
	var connErr *domain.ConnectivityError
	if errors.As(err, &connErr) {
		return "connectivity_violation"
	}
	return "error"
}
