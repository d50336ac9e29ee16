// Package prompt renders the two task instructions sent to the language
// model: one for creating a process from a description, one for updating an
// existing process from requested changes.
//
// Rendering is deterministic. Both instructions embed the fixed labeling
// conventions, the refusal rule, and the schema contract's format
// description, so the model is told exactly what shape to emit.
package prompt
