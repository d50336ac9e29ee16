package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when user text (or a description) is empty
// after trimming. Rejected before any network call is made.
var ErrInvalidInput = errors.New("invalid input: empty text")

// ErrModelRefused is returned when the model replies with the refusal
// sentinel instead of a process, i.e. the text did not describe a process.
var ErrModelRefused = errors.New("model refused: text does not describe a process")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// GatewayCause classifies why a completion call failed.
type GatewayCause string

const (
	CauseNetwork GatewayCause = "network"
	CauseAuth    GatewayCause = "auth"
	CauseTimeout GatewayCause = "timeout"
	CauseUnknown GatewayCause = "unknown"
)

// GatewayError reports a transport-level failure of the completion service.
// It never carries a raw transport error across the gateway boundary without
// classification.
type GatewayError struct {
	Cause GatewayCause
	Err   error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion gateway failed (%s): %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("completion gateway failed (%s)", e.Cause)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// MalformedError reports model output that did not parse as JSON.
// RawText preserves the offending completion for debugging and error surfacing.
type MalformedError struct {
	RawText string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// SchemaError reports parsed output that violates the structured contract.
// Path identifies the first violated field (e.g. "elements[3].target").
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Path, e.Reason)
}

// ConnectivityError reports a structurally valid process whose graph breaks
// the connectivity rules (an element with no flows attached).
type ConnectivityError struct {
	ElementID string
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("process is not connected: element %q has no incoming or outgoing flow", e.ElementID)
}
