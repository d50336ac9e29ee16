// Package schema is the canonical output contract for the assistant.
//
// It owns three things: a machine-readable description of the process shape
// the language model must emit (Describe), a decoder that turns an untyped
// parsed JSON value into a typed domain.Process (Decode), and the structural
// validator that enforces the contract (Validate). Connectivity of the
// resulting process graph is checked separately via CheckConnectivity, so
// callers can distinguish "wrong shape" from "valid shape, broken graph".
//
// Basic usage:
//
//	var candidate any
//	_ = json.Unmarshal(raw, &candidate)
//
//	process, err := schema.Decode(candidate)
//	if err != nil {
//	    // *domain.SchemaError with the first violated field path
//	}
package schema
