package domain

import (
	"context"
	"time"
)

// Intent identifies which path a turn takes.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
)

// TurnEvent describes one conversational turn for observability purposes.
type TurnEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Intent    Intent    `json:"intent"`
	Err       error     `json:"-"`
	Duration  time.Duration
}

// GatewayEvent describes one outbound completion call.
type GatewayEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// Hooks defines callbacks for assistant observability. All fields are
// optional; nil hooks are skipped.
type Hooks struct {
	OnTurnStart   func(context.Context, *TurnEvent)
	OnTurnEnd     func(context.Context, *TurnEvent)
	OnGatewayCall func(context.Context, *GatewayEvent)
}
