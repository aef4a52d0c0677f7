package linebridge

import "github.com/wagiedev/linebridge/internal/errors"

// Re-export error types from internal package

// TargetNotFoundError indicates the target program does not exist.
type TargetNotFoundError = errors.TargetNotFoundError

// SpawnError indicates the interpreter process could not be started.
type SpawnError = errors.SpawnError

// MalformedWireMessageError indicates an inbound line could not be decoded.
type MalformedWireMessageError = errors.MalformedWireMessageError

// WriteError indicates a message could not be written to the child.
type WriteError = errors.WriteError

// BridgeError is the base interface for all bridge errors.
type BridgeError = errors.BridgeError

// Re-export sentinel errors from internal package.
var (
	// ErrNotStarted indicates the child process has not been spawned.
	ErrNotStarted = errors.ErrNotStarted

	// ErrStdinClosed indicates the child's input was already half-closed.
	ErrStdinClosed = errors.ErrStdinClosed
)
