package linebridge

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/linebridge/internal/codec"
	"github.com/wagiedev/linebridge/internal/config"
	"github.com/wagiedev/linebridge/internal/errors"
	"github.com/wagiedev/linebridge/internal/sink"
	"github.com/wagiedev/linebridge/internal/subprocess"
	"github.com/wagiedev/linebridge/internal/target"
)

// Trace labels written to the diagnostic sink.
const (
	labelOutbound  = "message to child: "
	labelInbound   = "message from child: "
	labelStarted   = "process started: "
	labelClosed    = "process closed: "
	labelStderr    = "child error: "
	labelSendError = "error sending message: "
	labelMalformed = "malformed message from child: "
	labelReadError = "error reading from child: "
)

// Bridge owns one child process and exchanges wire messages with it.
//
// Callbacks run on a single dispatcher goroutine in the order the child
// produced them; they never run concurrently with each other. A callback may
// call Send, Configure, or Close, but must not block on Wait or Done.
//
// Lifecycle: a Bridge is single-use. After the child exits, create a new
// Bridge to talk to a new process.
type Bridge struct {
	id          string
	log         *slog.Logger
	target      string
	transport   config.Transport
	diagnostics sink.Sink
	listeners   atomic.Pointer[config.Listeners]

	mu          sync.Mutex // Protects interpreter
	interpreter string

	done     chan struct{}
	exitCode int // Written before done is closed
}

// New spawns the target program with the configured interpreter and returns
// a Bridge connected to it.
//
// Returns TargetNotFoundError if targetPath does not exist (nothing is
// spawned), or SpawnError if the interpreter cannot be started.
func New(targetPath string, opts ...Option) (*Bridge, error) {
	return Start(context.Background(), targetPath, opts...)
}

// Start is like New but binds the child process to ctx: cancelling ctx
// kills the process.
func Start(ctx context.Context, targetPath string, opts ...Option) (*Bridge, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	options := applyOptions(opts)
	resolved := config.Resolve(options, os.Stderr)

	id := ulid.Make().String()
	log := resolved.Logger.With("component", "bridge", "bridge_id", id)

	path, err := target.Locate(log, targetPath)
	if err != nil {
		return nil, err
	}

	transport := resolved.Transport
	if transport == nil {
		transport = subprocess.NewProcessTransport(log, path, resolved)
	}

	b := &Bridge{
		id:          id,
		log:         log,
		target:      targetPath,
		transport:   transport,
		diagnostics: resolved.Sink,
		interpreter: resolved.Interpreter,
		done:        make(chan struct{}),
	}

	listeners := resolved.Listeners
	b.listeners.Store(&listeners)

	if err := transport.Start(ctx); err != nil {
		log.Error("Failed to start bridge", "error", err)

		return nil, err
	}

	if listeners.Logging {
		b.diagnostics.Print(labelStarted, targetPath, sink.HintInbound)
	}

	go b.dispatch()

	log.Info("Bridge started", "target", path, "interpreter", resolved.Interpreter, "pid", transport.PID())

	return b, nil
}

// Configure replaces the bridge's callbacks and logging flag.
//
// The new set starts from defaults: callbacks not given are cleared and
// logging is enabled unless WithLogging(false) is passed. The previous set
// is detached in the same step, so no event is ever delivered to both.
// WithInterpreter is recorded for future spawns and does not affect the
// running process. Process-level options (logger, sink, dir, env,
// transport) only take effect in New.
func (b *Bridge) Configure(opts ...Option) {
	options := applyOptions(opts)

	if options.Interpreter != "" {
		b.mu.Lock()
		b.interpreter = options.Interpreter
		b.mu.Unlock()
	}

	listeners := config.ResolveListeners(options)
	b.listeners.Store(&listeners)

	b.log.Debug("Bridge reconfigured",
		"on_data", listeners.OnData != nil,
		"on_error", listeners.OnError != nil,
		"on_close", listeners.OnClose != nil,
		"logging", listeners.Logging,
	)
}

// Send encodes text as one wire message and writes it to the child's stdin.
//
// Send never panics on a failed write. A failure is always reported to the
// diagnostic sink and also returned as a *WriteError for callers that want
// to check it; fire-and-forget callers may ignore the result. Send does not
// refuse to write after the child has exited: the write is attempted and the
// resulting error is reported.
func (b *Bridge) Send(text string) error {
	if b.listeners.Load().Logging {
		b.diagnostics.Print(labelOutbound, text, sink.HintOutbound)
	}

	if err := b.transport.WriteLine(codec.AppendLine(nil, text)); err != nil {
		writeErr := &errors.WriteError{Err: err}

		b.log.Debug("Failed to send message", "error", err)
		b.diagnostics.Print(labelSendError, writeErr.Error(), sink.HintError)

		return writeErr
	}

	return nil
}

// Close half-closes the child's stdin to signal that no more messages will
// be sent. It neither waits for nor kills the child, and leaves callbacks in
// place. It's safe to call Close multiple times.
func (b *Bridge) Close() error {
	b.log.Debug("Ending input")

	return b.transport.EndInput()
}

// Kill forcefully terminates the child. The close notification is still
// delivered exactly once.
func (b *Bridge) Kill() error {
	return b.transport.Kill()
}

// Done returns a channel that is closed after the close notification has
// been delivered.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the child has exited and its close notification has
// been delivered, then returns the exit code (-1 if killed by a signal).
func (b *Bridge) Wait(ctx context.Context) (int, error) {
	select {
	case <-b.done:
		return b.exitCode, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ID returns the unique identifier used in this bridge's log records.
func (b *Bridge) ID() string {
	return b.id
}

// Target returns the target program path as given to New.
func (b *Bridge) Target() string {
	return b.target
}

// Interpreter returns the interpreter name used for spawning. After
// Configure(WithInterpreter(...)) this is the name future spawns would use.
func (b *Bridge) Interpreter() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.interpreter
}

// PID returns the child's process id.
func (b *Bridge) PID() int {
	return b.transport.PID()
}

// dispatch delivers transport events to the current listener set until the
// transport reports the exit.
func (b *Bridge) dispatch() {
	defer close(b.done)

	for ev := range b.transport.Events() {
		// Load per event so a Configure call takes effect for the next event.
		listeners := b.listeners.Load()

		switch ev.Kind {
		case config.EventLine:
			b.handleLine(listeners, ev.Data)
		case config.EventStderr:
			b.handleStderr(listeners, ev.Data)
		case config.EventReadError:
			b.log.Debug("Read error from child", "error", ev.Err)
			b.diagnostics.Print(labelReadError, ev.Err.Error(), sink.HintError)
		case config.EventExit:
			b.handleExit(listeners, ev.Code)

			return
		}
	}
}

func (b *Bridge) handleLine(listeners *config.Listeners, line string) {
	text, err := codec.Decode(line)
	if err != nil {
		b.log.Debug("Dropping malformed message", "error", err)
		b.diagnostics.Print(labelMalformed, err.Error(), sink.HintError)

		return
	}

	if listeners.Logging {
		b.diagnostics.Print(labelInbound, text, sink.HintInbound)
	}

	if listeners.OnData != nil {
		listeners.OnData(text)
	}
}

func (b *Bridge) handleStderr(listeners *config.Listeners, chunk string) {
	if listeners.Logging {
		b.diagnostics.Print(labelStderr, b.target+": "+chunk, sink.HintError)
	}

	if listeners.OnError != nil {
		listeners.OnError(chunk)
	}
}

func (b *Bridge) handleExit(listeners *config.Listeners, code int) {
	b.exitCode = code

	b.log.Info("Child process closed", "exit_code", code)

	if listeners.Logging {
		b.diagnostics.Print(labelClosed, b.target+" closed with code "+strconv.Itoa(code), sink.HintInbound)
	}

	if listeners.OnClose != nil {
		listeners.OnClose(code)
	}
}
