// Package http exposes the assistant over a JSON REST API.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/procwise/procwise/internal/logging"
	"github.com/procwise/procwise/pkg/domain"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Assistant is the conversational core the server fronts.
type Assistant interface {
	HandleTurn(ctx context.Context, sessionID, userText string) (*domain.Process, error)
	Process(ctx context.Context, sessionID string) (*domain.Process, error)
	Reset(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
}

// Server routes REST requests to an Assistant.
type Server struct {
	assistant Assistant
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithGatherer sets the metrics registry served at /metrics
// (default: the global prometheus gatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets a custom structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler validates the embedded API contract and builds the router.
func NewHandler(assistant Assistant, opts ...Option) (http.Handler, error) {
	if err := ValidateSpec(); err != nil {
		return nil, fmt.Errorf("embedded openapi spec: %w", err)
	}

	s := &Server{
		assistant: assistant,
		gatherer:  prometheus.DefaultGatherer,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getSpec)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/{sessionID}/turns", s.postTurn)
		r.Get("/{sessionID}/process", s.getProcess)
		r.Delete("/{sessionID}", s.deleteSession)
	})
	return r, nil
}

// ValidateSpec checks the embedded OpenAPI document.
func ValidateSpec() error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(openapiSpec)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.assistant.Sessions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": sessions})
}

type turnRequest struct {
	Text string `json:"text"`
}

func (s *Server) postTurn(w http.ResponseWriter, r *http.Request) {
	var body turnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("decoding request body: %w", domain.ErrInvalidInput))
		return
	}

	process, err := s.assistant.HandleTurn(r.Context(), chi.URLParam(r, "sessionID"), body.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, process)
}

func (s *Server) getProcess(w http.ResponseWriter, r *http.Request) {
	process, err := s.assistant.Process(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, process)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.assistant.Reset(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind, status := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "kind", kind, "err", err)
	}
	s.writeJSON(w, status, map[string]errorBody{"error": {Kind: kind, Message: err.Error()}})
}

// classify maps the assistant's error taxonomy onto status codes. Rejected
// model output surfaces as a bad gateway because the upstream model, not the
// caller, produced the offending payload.
func classify(err error) (kind string, status int) {
	var gatewayErr *domain.GatewayError
	var malformedErr *domain.MalformedError
	var schemaErr *domain.SchemaError
	var connectivityErr *domain.ConnectivityError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input", http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrModelRefused):
		return "refused", http.StatusUnprocessableEntity
	case errors.As(err, &gatewayErr):
		if gatewayErr.Cause == domain.CauseTimeout {
			return "gateway_timeout", http.StatusGatewayTimeout
		}
		return "gateway_" + string(gatewayErr.Cause), http.StatusBadGateway
	case errors.As(err, &malformedErr):
		return "malformed", http.StatusBadGateway
	case errors.As(err, &schemaErr):
		return "schema_violation", http.StatusBadGateway
	case errors.As(err, &connectivityErr):
		return "connectivity_violation", http.StatusBadGateway
	default:
		return "error", http.StatusInternalServerError
	}
}
