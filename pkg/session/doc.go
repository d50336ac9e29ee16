// Package session coordinates concurrent access to per-session conversation
// state. The Manager guarantees at most one in-flight turn per session via
// in-process refcounted locks, optionally extended across replicas with a
// ports.DistributedLocker.
package session
