package events

import "time"

// ExecutionStart is emitted before executing a GraphQL operation.
type ExecutionStart struct {
	OperationName string
	OperationType string
}

// ExecutionFinish is emitted after executing a GraphQL operation.
type ExecutionFinish struct {
	OperationName string
	OperationType string
	ErrorCount    int
	DataNulled    bool
	Duration      time.Duration
}

// NullPropagated is emitted when a Non-Null violation bubbles a null from a
// field position to its nearest nullable ancestor. AncestorPath is empty when
// the null reached the response root.
type NullPropagated struct {
	FieldPath    string
	AncestorPath string
}
