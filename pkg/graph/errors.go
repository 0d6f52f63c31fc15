package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNoNodes          = errors.New("graph has no nodes")
	ErrDuplicateNodeID  = errors.New("duplicate node id")
	ErrDuplicateEdgeID  = errors.New("duplicate edge id")
	ErrEmbeddingMissing = errors.New("embedding missing")
	ErrEmbeddingFailed  = errors.New("embedding failed")
)

// OpError provides structured error information for graph operations.
type OpError struct {
	Op      string // Operation that failed (e.g., "Match", "Infer")
	Entity  string // Entity kind (e.g., "node", "edge", "graph")
	ID      string // Entity id (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *OpError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *OpError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NodeError wraps a cause with node context.
func NodeError(op string, id NodeID, cause error) error {
	return &OpError{Op: op, Entity: "node", ID: string(id), Cause: cause}
}

// EdgeError wraps a cause with edge context.
func EdgeError(op string, id EdgeID, cause error) error {
	return &OpError{Op: op, Entity: "edge", ID: string(id), Cause: cause}
}

// GraphError wraps a cause with graph context.
func GraphError(op string, id GraphID, cause error) error {
	return &OpError{Op: op, Entity: "graph", ID: string(id), Cause: cause}
}

// IsInputError reports whether the error belongs to the caller-fault family:
// malformed graphs or unready embeddings. Input errors are never retried.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoNodes) ||
		errors.Is(err, ErrDuplicateNodeID) ||
		errors.Is(err, ErrDuplicateEdgeID) ||
		errors.Is(err, ErrEmbeddingMissing)
}
