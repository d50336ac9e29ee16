// Package middleware provides decorators for session stores: transparent
// encryption at rest and PII masking of user-supplied text.
package middleware

import "github.com/procwise/procwise/pkg/ports"

// Middleware allows wrapping a ProcessStore to add behavior.
type Middleware func(ports.ProcessStore) ports.ProcessStore

// Chain applies middlewares so the first one listed is the outermost.
func Chain(store ports.ProcessStore, middlewares ...Middleware) ports.ProcessStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
