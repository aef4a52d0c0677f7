package config

import "context"

// EventKind identifies what a transport Event carries.
type EventKind int

const (
	// EventLine is one newline-delimited line read from stdout.
	EventLine EventKind = iota
	// EventStderr is one raw chunk read from stderr.
	EventStderr
	// EventReadError reports a failure reading stdout or stderr.
	EventReadError
	// EventExit is the final event: the process has exited.
	EventExit
)

// Event is a notification produced by a Transport.
type Event struct {
	Kind EventKind
	// Data holds the line (without terminator) or the raw stderr chunk.
	Data string
	// Code holds the exit code for EventExit.
	Code int
	// Err holds the read error for EventReadError, or the wait error for
	// EventExit when the process did not exit cleanly.
	Err error
}

// Transport defines the interface between a bridge and its child process.
// Implement this to provide custom transports for testing or alternative
// process hosts.
//
// The default implementation is ProcessTransport which spawns a subprocess.
type Transport interface {
	// Start spawns the process. It is called exactly once.
	Start(ctx context.Context) error

	// Events returns the channel of process notifications. The channel
	// yields lines and stderr chunks in arrival order, then exactly one
	// EventExit, and is then closed.
	Events() <-chan Event

	// WriteLine writes one complete wire line to the process's stdin.
	// This method must be safe for concurrent use.
	WriteLine(line []byte) error

	// EndInput half-closes stdin. It's safe to call multiple times.
	EndInput() error

	// Kill forcefully terminates the process. It's safe to call multiple times.
	Kill() error

	// PID returns the process id, or 0 if not started.
	PID() int
}
