/*
Package procwise is a conversational assistant that turns natural-language
descriptions into a structured process-diagram model, and revises that model
on follow-up instructions.

The Assistant bridges an unreliable, free-text-producing language model and a
strict structured contract: it builds task-specific instructions, calls the
completion gateway, then sanitizes and validates the raw completion before a
typed process is allowed out. Conversation state is a single piece of
per-session data, the last accepted process, which decides between the
create and update paths and is never touched by a failed turn.

# Architecture

The core is decoupled from adapters (completion services, session stores,
transports) through the interfaces in pkg/ports, following Hexagonal
Architecture principles. The packages underneath:

  - pkg/domain: process model and error taxonomy.
  - pkg/schema: the output contract (format description, decoding, validation).
  - pkg/prompt: create/update instruction rendering.
  - pkg/response: sanitizer and validator for raw completions.
  - pkg/session: per-session turn serialization.
  - pkg/adapters: completion gateways and session stores.

# Usage

	assistant, err := procwise.New(
		openai.New("gpt-4o-mini", os.Getenv("OPENAI_API_KEY")),
	)
	if err != nil {
		log.Fatal(err)
	}

	process, err := assistant.HandleTurn(ctx, sessionID,
		"Create an order-to-cash process")
*/
package procwise
