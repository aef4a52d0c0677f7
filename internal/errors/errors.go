package errors

import (
	"errors"
	"fmt"
)

// BridgeError is the base interface for all bridge errors.
type BridgeError interface {
	error
	IsBridgeError() bool
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ BridgeError = (*TargetNotFoundError)(nil)
	_ BridgeError = (*SpawnError)(nil)
	_ BridgeError = (*MalformedWireMessageError)(nil)
	_ BridgeError = (*WriteError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotStarted indicates the child process has not been spawned.
	ErrNotStarted = errors.New("process not started")

	// ErrStdinClosed indicates the child's input stream was already half-closed.
	ErrStdinClosed = errors.New("stdin closed")

	// ErrAlreadyStarted indicates Start was called twice on the same transport.
	ErrAlreadyStarted = errors.New("process already started")
)

// TargetNotFoundError indicates the target program does not exist on disk.
type TargetNotFoundError struct {
	Path string
	Err  error
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target program does not exist at path: %s", e.Path)
}

func (e *TargetNotFoundError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *TargetNotFoundError) IsBridgeError() bool { return true }

// SpawnError indicates the interpreter process could not be started.
type SpawnError struct {
	Interpreter string
	Err         error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Interpreter, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *SpawnError) IsBridgeError() bool { return true }

// MalformedWireMessageError indicates an inbound line is not a valid
// comma-joined sequence of decimal character codes.
// Index is the zero-based position of the offending field.
type MalformedWireMessageError struct {
	Raw   string
	Field string
	Index int
	Err   error
}

func (e *MalformedWireMessageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed wire message: field %d (%q): %v", e.Index, e.Field, e.Err)
	}

	return fmt.Sprintf("malformed wire message: field %d (%q)", e.Index, e.Field)
}

func (e *MalformedWireMessageError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *MalformedWireMessageError) IsBridgeError() bool { return true }

// WriteError indicates a message could not be written to the child's input stream.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write message: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *WriteError) IsBridgeError() bool { return true }
