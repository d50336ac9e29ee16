// Package response turns an arbitrary model completion into either a
// validated process or a classified failure.
//
// Model output is untrusted text: it may be wrapped in code fences, be the
// refusal sentinel, fail to parse, or parse into something that violates the
// contract. Every step fails with a distinct error kind so the caller can
// decide whether to fall back or surface the failure verbatim.
package response

import (
	"encoding/json"
	"strings"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/prompt"
	"github.com/procwise/procwise/pkg/schema"
)

const fenceMarker = "```"

// Parse sanitizes and validates one raw completion.
//
// Failure kinds, in order of detection:
//   - domain.ErrModelRefused: the trimmed text is exactly the refusal sentinel
//   - *domain.MalformedError: the text did not parse as JSON
//   - *domain.SchemaError: parsed, but violates the structured contract
//   - *domain.ConnectivityError: valid shape, but the graph is not connected
func Parse(raw string) (*domain.Process, error) {
	text := strings.TrimSpace(raw)

	if text == prompt.RefusalSentinel {
		return nil, domain.ErrModelRefused
	}

	text = StripFences(text)

	var candidate any
	if err := json.Unmarshal([]byte(text), &candidate); err != nil {
		return nil, &domain.MalformedError{RawText: raw, Err: err}
	}

	process, err := schema.Decode(candidate)
	if err != nil {
		return nil, err
	}

	if err := schema.CheckConnectivity(process); err != nil {
		return nil, err
	}

	return process, nil
}

// StripFences removes a leading and trailing code-fence marker, including an
// optional language tag on the opening fence. Interior content is left
// untouched; unfenced text passes through unchanged.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return text
	}

	rest := trimmed[len(fenceMarker):]
	// Drop the language tag ("json", "JSON", ...) up to the first newline.
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		// Single-line fenced content: strip a trailing fence if present.
		rest = strings.TrimSuffix(strings.TrimSpace(rest), fenceMarker)
		return strings.TrimSpace(rest)
	}

	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, fenceMarker)
	return strings.TrimSpace(rest)
}
