package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procwise/procwise/pkg/domain"
)

type stubAssistant struct {
	process *domain.Process
	err     error

	lastSession string
	lastText    string
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
	return s.err
}

func (s *stubAssistant) Sessions(ctx context.Context) ([]string, error) {
	return []string{"alpha"}, s.err
}

func minimalProcess() *domain.Process {
	return &domain.Process{
		ID: "onboarding",
		Elements: []domain.Element{
			{ID: "start", Type: domain.TypeStartEvent},
			{ID: "end", Type: domain.TypeEndEvent},
			{ID: "f1", Type: domain.TypeSequenceFlow, Source: "start", Target: "end"},
		},
	}
}

func TestHandleDescribeProcess(t *testing.T) {
	stub := &stubAssistant{process: minimalProcess()}
	s := NewServer(stub)

	got, err := s.handleDescribeProcess(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "alpha",
		"text":       "new hires fill a form and HR reviews it",
	})
	require.NoError(t, err)
	assert.Equal(t, "alpha", stub.lastSession)
	assert.Equal(t, "new hires fill a form and HR reviews it", stub.lastText)
	assert.True(t, got.Equal(stub.process))
}

func TestHandleDescribeProcessRequiresSession(t *testing.T) {
	s := NewServer(&stubAssistant{process: minimalProcess()})

	_, err := s.handleDescribeProcess(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"text": "no session here",
	})
	assert.Error(t, err)
}

func TestHandleDescribeProcessPropagatesRejection(t *testing.T) {
	stub := &stubAssistant{err: domain.ErrModelRefused}
	s := NewServer(stub)

	_, err := s.handleDescribeProcess(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "alpha",
		"text":       "the weather is nice",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelRefused))
}

func TestHandleGetProcess(t *testing.T) {
	stub := &stubAssistant{process: minimalProcess()}
	s := NewServer(stub)

	got, err := s.handleGetProcess(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "alpha",
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(stub.process))
}

func TestHandleGetProcessNotFound(t *testing.T) {
	stub := &stubAssistant{err: domain.ErrSessionNotFound}
	s := NewServer(stub)

	_, err := s.handleGetProcess(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "ghost",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}
