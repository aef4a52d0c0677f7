// Package config provides configuration types for the line bridge.
package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/wagiedev/linebridge/internal/sink"
)

// DefaultInterpreter is the executable used to launch the target program
// when no interpreter is configured.
const DefaultInterpreter = "python"

// Options configures a bridge and the process it spawns.
//
// Pointer fields distinguish "not set" from the zero value; Resolve applies
// the defaults.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Interpreter is the executable that runs the target program.
	// Changing it only affects future spawns.
	Interpreter string

	// OnData is called once per decoded inbound message.
	OnData func(text string)

	// OnError is called once per raw chunk read from the child's stderr.
	OnError func(text string)

	// OnClose is called once when the child process has exited.
	// The code is -1 if the process was terminated by a signal.
	OnClose func(code int)

	// Logging gates traffic tracing to the diagnostic sink.
	// If nil, tracing is enabled.
	Logging *bool

	// Sink receives traffic traces and failure reports.
	// If nil, a console sink on stderr is used.
	Sink sink.Sink

	// Dir is the working directory of the child process.
	// If empty, the caller's working directory is used.
	Dir string

	// Env provides additional environment variables for the child process.
	Env map[string]string

	// Transport allows injecting a custom transport implementation.
	// If nil, the default ProcessTransport is created automatically.
	Transport Transport
}

// Resolved is an Options value with every default applied.
type Resolved struct {
	Logger      *slog.Logger
	Interpreter string
	Listeners   Listeners
	Sink        sink.Sink
	Dir         string
	Env         map[string]string
	Transport   Transport
}

// Listeners is the set of callbacks in effect for a bridge, together with
// the logging flag that gates their traces. A bridge swaps the whole value
// on reconfiguration.
type Listeners struct {
	OnData  func(text string)
	OnError func(text string)
	OnClose func(code int)
	Logging bool
}

// Resolve applies defaults to options. It is the only place defaults are
// decided. A nil options value resolves to all defaults. stderr is where
// the default console sink writes; nil means os.Stderr.
func Resolve(options *Options, stderr io.Writer) *Resolved {
	if options == nil {
		options = &Options{}
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	interpreter := options.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}

	diagnostics := options.Sink
	if diagnostics == nil {
		diagnostics = sink.NewConsole(stderr)
	}

	return &Resolved{
		Logger:      log,
		Interpreter: interpreter,
		Listeners:   ResolveListeners(options),
		Sink:        diagnostics,
		Dir:         options.Dir,
		Env:         options.Env,
		Transport:   options.Transport,
	}
}

// ResolveListeners extracts the listener set from options. Logging defaults
// to enabled whenever it is not set explicitly.
func ResolveListeners(options *Options) Listeners {
	if options == nil {
		options = &Options{}
	}

	logging := true
	if options.Logging != nil {
		logging = *options.Logging
	}

	return Listeners{
		OnData:  options.OnData,
		OnError: options.OnError,
		OnClose: options.OnClose,
		Logging: logging,
	}
}
