package linebridge

import "github.com/wagiedev/linebridge/internal/config"

// Transport defines the interface between a Bridge and its child process.
// Implement this to provide custom transports for testing or alternative
// process hosts.
//
// The default implementation spawns a subprocess. Custom transports can be
// injected via WithTransport.
type Transport = config.Transport

// Event is a notification produced by a Transport.
type Event = config.Event

// EventKind identifies what an Event carries.
type EventKind = config.EventKind

// Event kinds.
const (
	EventLine      = config.EventLine
	EventStderr    = config.EventStderr
	EventReadError = config.EventReadError
	EventExit      = config.EventExit
)
