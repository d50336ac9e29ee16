package canned

import (
	"context"
	"errors"
	"log/slog"

	"github.com/procwise/procwise/internal/logging"
	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
)

// Fallback decorates a Completer, substituting a secondary completer when
// the primary fails with a *domain.GatewayError.
//
// Only transport-level failures are absorbed. Refusals, malformed output,
// and schema violations arise downstream of a successful completion, so the
// decorator structurally cannot mask them.
type Fallback struct {
	primary   ports.Completer
	secondary ports.Completer
	logger    *slog.Logger
}

// FallbackOption configures the decorator.
type FallbackOption func(*Fallback)

// WithLogger configures a logger for absorbed failures.
func WithLogger(logger *slog.Logger) FallbackOption {
	return func(f *Fallback) {
		f.logger = logger
	}
}

// NewFallback wraps primary, falling back to secondary on gateway failure.
func NewFallback(primary, secondary ports.Completer, opts ...FallbackOption) *Fallback {
	f := &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Complete tries the primary completer, degrading to the secondary on
// *domain.GatewayError. Any other failure propagates untouched.
func (f *Fallback) Complete(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
	text, err := f.primary.Complete(ctx, instruction, opts)
	if err == nil {
		return text, nil
	}

	var gatewayErr *domain.GatewayError
	if !errors.As(err, &gatewayErr) {
		return "", err
	}

	f.logger.Warn("completion gateway failed, using fallback completer",
		"cause", string(gatewayErr.Cause),
		"err", gatewayErr.Err,
	)

	return f.secondary.Complete(ctx, instruction, opts)
}
