package canned_test

import (
	"context"
	"errors"
	"testing"

	"github.com/procwise/procwise/pkg/adapters/canned"
	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
	"github.com/procwise/procwise/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completerFunc func(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error)

func (f completerFunc) Complete(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
	return f(ctx, instruction, opts)
}

func TestCannedCompletion_PassesFullValidation(t *testing.T) {
	text, err := canned.New().Complete(context.Background(), "anything", ports.CompletionOptions{})
	require.NoError(t, err)

	process, err := response.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "immigration_process", process.ID)
	assert.Len(t, process.Nodes(), 15)
	assert.Len(t, process.Flows(), 15)
}

func TestFallback_AbsorbsGatewayError(t *testing.T) {
	primary := completerFunc(func(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
		return "", &domain.GatewayError{Cause: domain.CauseTimeout, Err: context.DeadlineExceeded}
	})

	fallback := canned.NewFallback(primary, canned.New())

	text, err := fallback.Complete(context.Background(), "describe", ports.CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, canned.Completion, text)
}

func TestFallback_PrimarySuccessWins(t *testing.T) {
	primary := completerFunc(func(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
		return "primary text", nil
	})

	fallback := canned.NewFallback(primary, canned.New())

	text, err := fallback.Complete(context.Background(), "describe", ports.CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "primary text", text)
}

func TestFallback_DoesNotMaskOtherFailures(t *testing.T) {
	sentinel := errors.New("not a gateway failure")
	primary := completerFunc(func(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
		return "", sentinel
	})

	fallback := canned.NewFallback(primary, canned.New())

	_, err := fallback.Complete(context.Background(), "describe", ports.CompletionOptions{})
	assert.ErrorIs(t, err, sentinel)
}
