// Package errors defines error types for the line bridge.
//
// This package provides structured error types for the failure scenarios of
// spawning a child process and exchanging wire messages with it. All error
// types support error unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
