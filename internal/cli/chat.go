package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/procwise/procwise"
	"github.com/procwise/procwise/internal/config"
	"github.com/procwise/procwise/internal/presentation/tui"
	"github.com/procwise/procwise/pkg/domain"
)

// ChatOptions contains all the configuration for the chat command.
type ChatOptions struct {
	ConfigPath string
	SessionID  string
	Fresh      bool
	Debug      bool
	Plain      bool
}

// RunChat starts the interactive modeling loop on Stdin/Stdout.
func RunChat(opts ChatOptions) error {
	_ = godotenv.Load()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := createLogger(cfg.LogLevel, opts.Debug)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive && !opts.Plain {
		tui.PrintBanner(procwise.Version)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	assistant, cleanup, err := BuildAssistant(sigCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error initializing assistant: %w", err)
	}
	defer cleanup()

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if opts.Fresh {
		if err := assistant.Reset(sigCtx, sessionID); err != nil {
			logger.Warn("failed to reset session", "session_id", sessionID, "err", err)
		}
	}

	render := tui.NewRenderer()
	printSystemMessage("Session '%s' active. Describe the process you want to model.", sessionID)
	printSystemMessage("Commands: /show /reset /quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		if sigCtx.Err() != nil {
			fmt.Println()
			return nil
		}
		if interactive {
			fmt.Print("> ")
		}

		text, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		input := strings.TrimSpace(text)
		switch input {
		case "":
			continue
		case "/quit", "/exit":
			printSystemMessage("Bye!")
			return nil
		case "/reset":
			if err := assistant.Reset(sigCtx, sessionID); err != nil {
				printSystemMessage("Reset failed: %v", err)
				continue
			}
			printSystemMessage("Session reset. Describe a new process.")
		case "/show":
			process, err := assistant.Process(sigCtx, sessionID)
			if err != nil {
				printSystemMessage("No process yet. Describe one first.")
				continue
			}
			printProcess(render, process, opts.Plain)
		default:
			runChatTurn(sigCtx, assistant, render, sessionID, input, opts.Plain)
		}
	}
}

func runChatTurn(ctx context.Context, assistant *procwise.Assistant, render func(string) (string, error), sessionID, input string, plain bool) {
	updating := assistant.Established(ctx, sessionID)

	process, err := assistant.HandleTurn(ctx, sessionID, input)
	if err != nil {
		printSystemMessage("%s", describeFailure(err))
		return
	}

	if updating {
		printSystemMessage("Updated process '%s'.", process.ID)
	} else {
		printSystemMessage("Created process '%s'. Further messages refine it.", process.ID)
	}
	printProcess(render, process, plain)
}

func printProcess(render func(string) (string, error), process *domain.Process, plain bool) {
	markdown := tui.ProcessMarkdown(process)
	if plain {
		fmt.Println(markdown)
		return
	}
	out, err := render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

// describeFailure turns the error taxonomy into a chat-friendly sentence.
func describeFailure(err error) string {
	var gatewayErr *domain.GatewayError
	var malformedErr *domain.MalformedError
	var schemaErr *domain.SchemaError
	var connectivityErr *domain.ConnectivityError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Please type a description of the process you want to model."
	case errors.Is(err, domain.ErrModelRefused):
		return "That does not look like a process description. Try describing the steps of a business process."
	case errors.As(err, &gatewayErr):
		return fmt.Sprintf("The model service is unavailable (%s). Try again in a moment.", gatewayErr.Cause)
	case errors.As(err, &malformedErr), errors.As(err, &schemaErr), errors.As(err, &connectivityErr):
		return "The model produced an unusable answer. Your process was left unchanged; try rephrasing."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
