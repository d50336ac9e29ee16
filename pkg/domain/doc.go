/*
Package domain contains the core domain models for the Procwise assistant.

It defines the structured process model the language model must produce
(Process, Element, ElementType), the error taxonomy shared by every layer,
and the hook types used for observability. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Element: One node or connector of the process model (task, event, gateway, flow).
  - Process: One turn's complete structured output, a set of connected elements.
  - Hooks: Callbacks fired around each conversational turn.
*/
package domain
