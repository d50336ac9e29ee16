package observability

import (
	"context"
	"testing"
	"time"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsTurnsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTurnEnd(ctx, &domain.TurnEvent{Intent: domain.IntentCreate, Duration: time.Second})
	hooks.OnTurnEnd(ctx, &domain.TurnEvent{Intent: domain.IntentUpdate, Duration: time.Second, Err: domain.ErrModelRefused})
	hooks.OnTurnEnd(ctx, &domain.TurnEvent{
		Intent:   domain.IntentCreate,
		Duration: time.Second,
		Err:      &domain.GatewayError{Cause: domain.CauseTimeout},
	})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.turns.WithLabelValues("create", "accepted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.turns.WithLabelValues("update", "refused")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.turns.WithLabelValues("create", "gateway_timeout")))
}

func TestOutcome_Classification(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "accepted"},
		{domain.ErrModelRefused, "refused"},
		{domain.ErrInvalidInput, "invalid_input"},
		{&domain.MalformedError{RawText: "x"}, "malformed"},
		{&domain.SchemaError{Path: "id"}, "schema_violation"},
		{&domain.ConnectivityError{ElementID: "a"}, "connectivity_violation"},
		{&domain.GatewayError{Cause: domain.CauseAuth}, "gateway_auth"},
		{context.Canceled, "error"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, outcome(tc.err))
	}
}
