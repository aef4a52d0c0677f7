package linebridge

import (
	"log/slog"

	"github.com/wagiedev/linebridge/internal/config"
)

// Options configures a Bridge. Build it with Option values rather than
// directly.
type Options = config.Options

// DefaultInterpreter is the interpreter used when WithInterpreter is not given.
const DefaultInterpreter = config.DefaultInterpreter

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to a fresh Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Listeners =====

// WithOnData sets the callback invoked with each decoded message from the child.
func WithOnData(fn func(text string)) Option {
	return func(o *Options) {
		o.OnData = fn
	}
}

// WithOnError sets the callback invoked with each raw chunk of the child's stderr.
func WithOnError(fn func(text string)) Option {
	return func(o *Options) {
		o.OnError = fn
	}
}

// WithOnClose sets the callback invoked once with the child's exit code.
// The code is -1 if the child was terminated by a signal.
func WithOnClose(fn func(code int)) Option {
	return func(o *Options) {
		o.OnClose = fn
	}
}

// WithLogging enables or disables traffic tracing to the diagnostic sink.
// Tracing is enabled unless this option disables it. Failures are reported
// to the sink regardless.
func WithLogging(enabled bool) Option {
	return func(o *Options) {
		o.Logging = &enabled
	}
}

// ===== Process =====

// WithInterpreter sets the executable that runs the target program
// (for example "python3" or "node"). Defaults to DefaultInterpreter.
func WithInterpreter(name string) Option {
	return func(o *Options) {
		o.Interpreter = name
	}
}

// WithDir sets the working directory of the child process.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithEnv provides additional environment variables for the child process.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithTransport injects a custom transport in place of spawning a process.
// Intended for tests and alternative process hosts.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// ===== Diagnostics =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSink sets the diagnostic sink for traffic traces and failure reports.
// If not set, a colored console sink on stderr is used.
func WithSink(s Sink) Option {
	return func(o *Options) {
		o.Sink = s
	}
}
