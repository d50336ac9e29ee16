package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procwise/procwise/pkg/domain"
)

type stubAssistant struct {
	process *domain.Process
	err     error

	lastSession string
	lastText    string
	resetCalls  int
	sessions    []string
}

func (s *stubAssistant) HandleTurn(ctx context.Context, sessionID, userText string) (*domain.Process, error) {
	s.lastSession = sessionID
	s.lastText = userText
	return s.process, s.err
}

func (s *stubAssistant) Process(ctx context.Context, sessionID string) (*domain.Process, error) {
	s.lastSession = sessionID
	return s.process, s.err
}

func (s *stubAssistant) Reset(ctx context.Context, sessionID string) error {
	s.lastSession = sessionID
	s.resetCalls++
	return s.err
}

func (s *stubAssistant) Sessions(ctx context.Context) ([]string, error) {
	return s.sessions, s.err
}

func sampleProcess() *domain.Process {
	return &domain.Process{
		ID: "leave_request",
		Elements: []domain.Element{
			{ID: "start", Type: domain.TypeStartEvent},
			{ID: "approve", Name: "Approve request", Type: domain.TypeUserTask},
			{ID: "end", Type: domain.TypeEndEvent},
			{ID: "f1", Type: domain.TypeSequenceFlow, Source: "start", Target: "approve"},
			{ID: "f2", Type: domain.TypeSequenceFlow, Source: "approve", Target: "end"},
		},
	}
}

func newTestHandler(t *testing.T, stub *stubAssistant) http.Handler {
	t.Helper()
	handler, err := NewHandler(stub)
	require.NoError(t, err)
	return handler
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec())
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler(t, &stubAssistant{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetSpec(t *testing.T) {
	handler := newTestHandler(t, &stubAssistant{})

	req := httptest.NewRequest("GET", "/openapi.yaml", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "openapi: 3.0.3")
}

func TestPostTurn(t *testing.T) {
	stub := &stubAssistant{process: sampleProcess()}
	handler := newTestHandler(t, stub)

	body := strings.NewReader(`{"text": "employees request leave and a manager approves it"}`)
	req := httptest.NewRequest("POST", "/sessions/alpha/turns", body)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alpha", stub.lastSession)
	assert.Equal(t, "employees request leave and a manager approves it", stub.lastText)

	var got domain.Process
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Equal(stub.process))
}

func TestPostTurnBadBody(t *testing.T) {
	handler := newTestHandler(t, &stubAssistant{})

	req := httptest.NewRequest("POST", "/sessions/alpha/turns", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetProcessNotFound(t *testing.T) {
	stub := &stubAssistant{err: domain.ErrSessionNotFound}
	handler := newTestHandler(t, stub)

	req := httptest.NewRequest("GET", "/sessions/ghost/process", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp map[string]errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "session_not_found", resp["error"].Kind)
}

func TestDeleteSession(t *testing.T) {
	stub := &stubAssistant{}
	handler := newTestHandler(t, stub)

	req := httptest.NewRequest("DELETE", "/sessions/alpha", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, stub.resetCalls)
	assert.Equal(t, "alpha", stub.lastSession)
}

func TestListSessions(t *testing.T) {
	stub := &stubAssistant{sessions: []string{"alpha", "beta"}}
	handler := newTestHandler(t, stub)

	req := httptest.NewRequest("GET", "/sessions", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"alpha", "beta"}, resp["sessions"])
}

func TestListSessionsEmpty(t *testing.T) {
	handler := newTestHandler(t, &stubAssistant{})

	req := httptest.NewRequest("GET", "/sessions", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"sessions": []}`, rr.Body.String())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   string
		status int
	}{
		{"invalid input", domain.ErrInvalidInput, "invalid_input", http.StatusBadRequest},
		{"refused", domain.ErrModelRefused, "refused", http.StatusUnprocessableEntity},
		{"gateway timeout", &domain.GatewayError{Cause: domain.CauseTimeout}, "gateway_timeout", http.StatusGatewayTimeout},
		{"gateway auth", &domain.GatewayError{Cause: domain.CauseAuth}, "gateway_auth", http.StatusBadGateway},
		{"gateway network", &domain.GatewayError{Cause: domain.CauseNetwork}, "gateway_network", http.StatusBadGateway},
		{"malformed", &domain.MalformedError{RawText: "oops", Err: errors.New("bad json")}, "malformed", http.StatusBadGateway},
		{"schema violation", &domain.SchemaError{Path: "elements[0].type", Reason: "unknown type"}, "schema_violation", http.StatusBadGateway},
		{"connectivity violation", &domain.ConnectivityError{ElementID: "island"}, "connectivity_violation", http.StatusBadGateway},
		{"unclassified", errors.New("boom"), "error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, &stubAssistant{err: tt.err})

			req := httptest.NewRequest("POST", "/sessions/alpha/turns", strings.NewReader(`{"text": "hi there"}`))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)

			var resp map[string]errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp["error"].Kind)
		})
	}
}
