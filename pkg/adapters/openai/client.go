// Package openai implements the completion gateway against an
// OpenAI-compatible chat-completions API.
//
// The adapter is deliberately thin: one request per Complete call, no
// retries, and every failure classified into a *domain.GatewayError before
// it crosses the port boundary.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements ports.Completer over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

type Option func(*Client)

// WithBaseURL points the client at a different OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a gateway client for the given model and credential.
func New(model, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete issues one completion request and returns the raw response text.
func (c *Client) Complete(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: instruction}},
		MaxTokens:   opts.MaxOutputTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", &domain.GatewayError{Cause: domain.CauseUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &domain.GatewayError{Cause: domain.CauseUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.GatewayError{Cause: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.GatewayError{Cause: domain.CauseNetwork, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.GatewayError{
			Cause: classifyStatus(resp.StatusCode),
			Err:   fmt.Errorf("completion API returned %s: %s", resp.Status, summarize(body)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &domain.GatewayError{Cause: domain.CauseUnknown, Err: fmt.Errorf("decoding completion response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &domain.GatewayError{Cause: domain.CauseUnknown, Err: errors.New("completion response has no choices")}
	}

	return parsed.Choices[0].Message.Content, nil
}

func classifyTransport(err error) domain.GatewayCause {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.CauseTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.CauseTimeout
		}
		return domain.CauseNetwork
	}
	return domain.CauseNetwork
}

func classifyStatus(status int) domain.GatewayCause {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.CauseAuth
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return domain.CauseTimeout
	default:
		return domain.CauseUnknown
	}
}

// summarize truncates API error bodies so gateway errors stay log-friendly.
func summarize(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
