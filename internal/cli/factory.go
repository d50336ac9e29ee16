package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	backend "github.com/redis/go-redis/v9"

	"github.com/procwise/procwise"
	"github.com/procwise/procwise/internal/config"
	"github.com/procwise/procwise/pkg/adapters/canned"
	"github.com/procwise/procwise/pkg/adapters/file"
	"github.com/procwise/procwise/pkg/adapters/memory"
	"github.com/procwise/procwise/pkg/adapters/openai"
	"github.com/procwise/procwise/pkg/adapters/postgres"
	"github.com/procwise/procwise/pkg/adapters/redis"
	"github.com/procwise/procwise/pkg/persistence/middleware"
	"github.com/procwise/procwise/pkg/ports"
)

// BuildAssistant wires an Assistant from configuration: completion gateway,
// session store backend and optional distributed locking. The returned
// cleanup function releases backend connections and must be called on exit.
func BuildAssistant(ctx context.Context, cfg config.Config, logger *slog.Logger, extra ...procwise.Option) (*procwise.Assistant, func(), error) {
	completer := buildCompleter(cfg, logger)

	opts := []procwise.Option{
		procwise.WithLogger(logger),
		procwise.WithCompletionOptions(ports.CompletionOptions{
			MaxOutputTokens: cfg.Model.MaxOutputTokens,
			Temperature:     cfg.Model.Temperature,
			Timeout:         cfg.Model.Timeout.Std(),
		}),
	}

	var store ports.ProcessStore
	cleanup := func() {}
	switch cfg.Store.Backend {
	case "memory":
		store = memory.NewStore()
	case "file":
		store = file.NewStore(cfg.Store.File.Path)
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Store.Redis.Address,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		storeOpts := []redis.Option{}
		if ttl := cfg.Store.Redis.TTL.Std(); ttl > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(ttl))
		}
		store = redis.NewFromClient(client, storeOpts...)
		opts = append(opts, procwise.WithLocker(redis.NewLocker(client, "procwise:lock:")))
		cleanup = func() { _ = client.Close() }
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.Store.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		pgStore, err := postgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		store = pgStore
		cleanup = pool.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	store, err := wrapStore(store, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts = append(opts, procwise.WithStore(store))
	opts = append(opts, extra...)
	assistant, err := procwise.New(completer, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return assistant, cleanup, nil
}

// wrapStore layers the configured persistence middlewares over the backend.
// PII masking runs before encryption so the ciphertext holds masked text.
func wrapStore(store ports.ProcessStore, cfg config.Config) (ports.ProcessStore, error) {
	var middlewares []middleware.Middleware

	if len(cfg.Store.PIIPatterns) > 0 {
		middlewares = append(middlewares, middleware.NewPIIMiddleware(cfg.Store.PIIPatterns))
	}
	if env := cfg.Store.EncryptionKeyEnv; env != "" {
		key, err := base64.StdEncoding.DecodeString(os.Getenv(env))
		if err != nil {
			return nil, fmt.Errorf("decoding encryption key from %s: %w", env, err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("encryption key from %s must be 32 bytes, got %d", env, len(key))
		}
		middlewares = append(middlewares, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	return middleware.Chain(store, middlewares...), nil
}

func buildCompleter(cfg config.Config, logger *slog.Logger) ports.Completer {
	var clientOpts []openai.Option
	if cfg.Model.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(cfg.Model.BaseURL))
	}

	var completer ports.Completer = openai.New(cfg.Model.Name, cfg.APIKey(), clientOpts...)
	if cfg.Model.Fallback {
		completer = canned.NewFallback(completer, canned.New(), canned.WithLogger(logger))
	}
	return completer
}
