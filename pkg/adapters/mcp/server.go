// Package mcp exposes the assistant as a Model Context Protocol server,
// so agent hosts can build and inspect process models through tool calls.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/procwise/procwise"
	"github.com/procwise/procwise/pkg/domain"
)

// Assistant defines the conversational surface required by the MCP server.
type Assistant interface {
	HandleTurn(ctx context.Context, sessionID, userText string) (*domain.Process, error)
	Process(ctx context.Context, sessionID string) (*domain.Process, error)
	Reset(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
}

// Server wraps the Assistant and exposes it as an MCP Server.
type Server struct {
	assistant Assistant
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(assistant Assistant) *Server {
	s := &Server{
		assistant: assistant,
		mcpServer: server.NewMCPServer("procwise-mcp", strings.TrimSpace(procwise.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: describe_process
	describeTool := mcp.NewTool("describe_process",
		mcp.WithDescription("Describe a business process in natural language (or request changes to the session's current process) and receive the resulting BPMN process model."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session to create or update")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Process description or requested changes")),
		mcp.WithOutputSchema[domain.Process](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribeProcess))

	// TOOL: get_process
	getTool := mcp.NewTool("get_process",
		mcp.WithDescription("Get the session's last accepted process model."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session to inspect")),
		mcp.WithOutputSchema[domain.Process](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetProcess))

	// TOOL: reset_session
	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Discard the session's process so the next turn starts from scratch."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session to reset")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, _ := request.GetArguments()["session_id"].(string)
		if sessionID == "" {
			return mcp.NewToolResultError("session_id is required"), nil
		}
		if err := s.assistant.Reset(ctx, sessionID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("session %q reset", sessionID)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleDescribeProcess(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Process, error) {
	sessionID, _ := args["session_id"].(string)
	text, _ := args["text"].(string)
	if sessionID == "" {
		return domain.Process{}, fmt.Errorf("session_id is required")
	}

	process, err := s.assistant.HandleTurn(ctx, sessionID, text)
	if err != nil {
		slog.Warn("MCP describe_process: turn rejected", "session_id", sessionID, "err", err)
		return domain.Process{}, fmt.Errorf("turn failed: %w", err)
	}
	return *process, nil
}

func (s *Server) handleGetProcess(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Process, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return domain.Process{}, fmt.Errorf("session_id is required")
	}

	process, err := s.assistant.Process(ctx, sessionID)
	if err != nil {
		return domain.Process{}, fmt.Errorf("no process for session %q: %w", sessionID, err)
	}
	return *process, nil
}

func (s *Server) registerResources() {
	// EXPOSE: procwise://sessions
	s.mcpServer.AddResource(mcp.NewResource("procwise://sessions", "Established Sessions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sessions, err := s.assistant.Sessions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		jsonBytes, _ := json.Marshal(sessions)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "procwise://sessions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
