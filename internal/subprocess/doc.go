// Package subprocess provides the process-backed transport for the line bridge.
//
// This package implements the Transport interface by spawning an interpreter
// running the target program and communicating via stdin/stdout. It
// reassembles stdout into lines, forwards raw stderr chunks, and reports the
// process exit as the final event.
package subprocess
