/*
Package ports defines the driven ports (interfaces) for the Procwise assistant.

These interfaces decouple the orchestration core from external
implementations, allowing the assistant to work with various completion
services and session stores.

# Key Interfaces

  - Completer: One-shot call to the external generative model.
  - ProcessStore: Persists the last accepted process per session.
  - DistributedLocker: Distributed locking for concurrent session access across replicas.
*/
package ports
