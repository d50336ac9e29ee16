package procwise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/procwise/procwise/internal/logging"
	"github.com/procwise/procwise/pkg/adapters/memory"
	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
	"github.com/procwise/procwise/pkg/prompt"
	"github.com/procwise/procwise/pkg/response"
	"github.com/procwise/procwise/pkg/session"
)

// DefaultCompletionOptions are applied when no options are configured.
// Token and temperature defaults match what the assistant was tuned with.
var DefaultCompletionOptions = ports.CompletionOptions{
	MaxOutputTokens: 2000,
	Temperature:     0.9,
	Timeout:         60 * time.Second,
}

// Assistant is the high-level entry point for the Procwise library.
// It drives the per-turn state machine: a session with no accepted process
// is Idle and takes the create path; once a turn succeeds the session is
// Established and every further turn takes the update path against the
// stored process. Failed turns never mutate session state.
type Assistant struct {
	sessions  *session.Manager
	completer ports.Completer
	store     ports.ProcessStore
	locker    ports.DistributedLocker
	options   ports.CompletionOptions
	hooks     domain.Hooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithStore injects a custom session store (default: in-memory).
func WithStore(store ports.ProcessStore) Option {
	return func(a *Assistant) {
		a.store = store
	}
}

// WithLocker enables distributed locking for multi-instance deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *Assistant) {
		a.locker = locker
	}
}

// WithCompletionOptions overrides the per-call completion options.
func WithCompletionOptions(opts ports.CompletionOptions) Option {
	return func(a *Assistant) {
		a.options = opts
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(a *Assistant) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the assistant.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// New initializes an Assistant around the given completion gateway.
func New(completer ports.Completer, opts ...Option) (*Assistant, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is required")
	}

	a := &Assistant{
		completer: completer,
		options:   DefaultCompletionOptions,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	sessionOpts := []session.Option{session.WithLogger(a.logger)}
	if a.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(a.locker))
	}
	a.sessions = session.NewManager(a.store, sessionOpts...)

	return a, nil
}

// HandleTurn runs one conversational turn for the given session and returns
// the newly accepted process.
//
// The turn is serialized against other turns of the same session. On any
// failure the session's stored process is left unchanged and the error keeps
// its original classification (see pkg/domain).
func (a *Assistant) HandleTurn(ctx context.Context, sessionID, userText string) (*domain.Process, error) {
	userText, err := SanitizeInput(userText)
	if err != nil {
		return nil, err
	}

	var accepted *domain.Process
	err = a.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := a.store.Load(ctx, sessionID)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("loading session %q: %w", sessionID, err)
		}

		intent := domain.IntentCreate
		if current != nil {
			intent = domain.IntentUpdate
		}

		event := &domain.TurnEvent{
			Timestamp: time.Now(),
			SessionID: sessionID,
			Intent:    intent,
		}
		if a.hooks.OnTurnStart != nil {
			a.hooks.OnTurnStart(ctx, event)
		}

		accepted, err = a.runTurn(ctx, sessionID, intent, userText, current)

		event.Duration = time.Since(event.Timestamp)
		event.Err = err
		if a.hooks.OnTurnEnd != nil {
			a.hooks.OnTurnEnd(ctx, event)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// runTurn executes the instruction/completion/validation pipeline.
// Callers hold the session lock.
func (a *Assistant) runTurn(ctx context.Context, sessionID string, intent domain.Intent, userText string, current *domain.Process) (*domain.Process, error) {
	var instruction string
	var err error
	switch intent {
	case domain.IntentCreate:
		instruction, err = prompt.BuildCreate(userText)
	default:
		instruction, err = prompt.BuildUpdate(userText, current)
	}
	if err != nil {
		return nil, err
	}

	a.logger.Debug("invoking completion gateway",
		"session_id", sessionID,
		"intent", string(intent),
		"instruction_size", len(instruction),
	)

	start := time.Now()
	raw, err := a.completer.Complete(ctx, instruction, a.options)
	if a.hooks.OnGatewayCall != nil {
		a.hooks.OnGatewayCall(ctx, &domain.GatewayEvent{
			Timestamp: start,
			SessionID: sessionID,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	if err != nil {
		return nil, err
	}

	process, err := response.Parse(raw)
	if err != nil {
		a.logger.Warn("rejected model output",
			"session_id", sessionID,
			"intent", string(intent),
			"err", err,
		)
		return nil, err
	}

	if err := a.store.Save(ctx, sessionID, process); err != nil {
		return nil, fmt.Errorf("storing accepted process: %w", err)
	}

	a.logger.Info("turn accepted",
		"session_id", sessionID,
		"intent", string(intent),
		"process_id", process.ID,
		"elements", len(process.Elements),
	)
	return process, nil
}

// Process returns the session's last accepted process.
// Fails with domain.ErrSessionNotFound for Idle sessions.
func (a *Assistant) Process(ctx context.Context, sessionID string) (*domain.Process, error) {
	return a.sessions.Load(ctx, sessionID)
}

// Established reports whether the session holds an accepted process.
func (a *Assistant) Established(ctx context.Context, sessionID string) bool {
	_, err := a.sessions.Load(ctx, sessionID)
	return err == nil
}

// Reset destroys the session, returning it to the Idle state.
func (a *Assistant) Reset(ctx context.Context, sessionID string) error {
	return a.sessions.Delete(ctx, sessionID)
}

// Sessions lists sessions holding an accepted process.
func (a *Assistant) Sessions(ctx context.Context) ([]string, error) {
	return a.sessions.List(ctx)
}
