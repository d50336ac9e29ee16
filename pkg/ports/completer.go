package ports

import (
	"context"
	"time"
)

// CompletionOptions tune one completion call.
type CompletionOptions struct {
	// MaxOutputTokens caps the length of the completion.
	MaxOutputTokens int

	// Temperature in [0, 1]. Higher values produce more varied output.
	Temperature float64

	// Timeout bounds the whole call. Zero means no explicit bound beyond the
	// caller's context.
	Timeout time.Duration
}

// Completer isolates the external generative model behind a single
// operation: one instruction string in, raw completion text out.
//
// Implementations must classify every transport, authentication, or timeout
// failure as *domain.GatewayError; a raw transport error must never cross
// this boundary. No retries happen at this layer.
type Completer interface {
	Complete(ctx context.Context, instruction string, opts CompletionOptions) (string, error)
}
