package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/procwise/procwise/internal/cli"
	"github.com/procwise/procwise/internal/config"
	"github.com/procwise/procwise/internal/logging"
	"github.com/procwise/procwise/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the assistant as an MCP Server.
This allows AI agents (like Claude Desktop) to build process models as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		_ = godotenv.Load()

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}

		// Logs must stay on Stderr so they don't corrupt JSON-RPC on Stdout.
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))
		log.SetOutput(os.Stderr)

		ctx := context.Background()
		assistant, cleanup, err := cli.BuildAssistant(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Error initializing assistant: %v", err)
		}
		defer cleanup()

		srv := mcp.NewServer(assistant)

		switch transport {
		case "stdio":
			logger.Info("starting procwise MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("starting procwise MCP server (SSE)", "port", port)

			sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(sigCtx, port); err != nil {
				if err != http.ErrServerClosed {
					logger.Error("MCP server execution failed", "err", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP server stopped gracefully")
		default:
			fmt.Printf("Unknown transport: %s. Supported: stdio, sse\n", transport)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8090, "Port to listen on (only for SSE)")
}
