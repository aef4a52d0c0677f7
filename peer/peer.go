package peer

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/wagiedev/linebridge/internal/codec"
	"github.com/wagiedev/linebridge/internal/errors"
)

// Options configures a Communicator.
type Options struct {
	// Input is where wire messages are read from. Defaults to os.Stdin.
	Input io.Reader

	// Output is where wire messages are written. Defaults to os.Stdout.
	Output io.Writer

	// Logger receives diagnostics. If nil, logging is disabled.
	Logger *slog.Logger

	// OnMessage is called with each decoded message. A returned error is
	// passed to OnError; listening continues.
	OnMessage func(text string) error

	// OnError is called for malformed messages and OnMessage failures.
	OnError func(err error)

	// OnClose is called once when Listen returns.
	OnClose func()
}

// Option configures Options using the functional options pattern.
type Option func(*Options)

// WithInput sets the reader wire messages are read from.
func WithInput(r io.Reader) Option {
	return func(o *Options) {
		o.Input = r
	}
}

// WithOutput sets the writer wire messages are written to.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithOnMessage sets the message callback.
func WithOnMessage(fn func(text string) error) Option {
	return func(o *Options) {
		o.OnMessage = fn
	}
}

// WithOnError sets the error callback.
func WithOnError(fn func(err error)) Option {
	return func(o *Options) {
		o.OnError = fn
	}
}

// WithOnClose sets the callback invoked when listening stops.
func WithOnClose(fn func()) Option {
	return func(o *Options) {
		o.OnClose = fn
	}
}

// Communicator exchanges wire messages with the bridge that spawned the
// current process.
type Communicator struct {
	log     *slog.Logger
	scanner *bufio.Scanner
	opts    *Options

	readMu  sync.Mutex
	writeMu sync.Mutex
}

// New creates a Communicator. Options are applied in order.
func New(opts ...Option) *Communicator {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Input == nil {
		options.Input = os.Stdin
	}

	if options.Output == nil {
		options.Output = os.Stdout
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Communicator{
		log:     log.With("component", "peer"),
		scanner: codec.NewLineScanner(options.Input),
		opts:    options,
	}
}

// Send writes text as one wire message. It is safe for concurrent use.
func (c *Communicator) Send(text string) error {
	line := codec.AppendLine(nil, text)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := c.opts.Output.Write(line); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	c.log.Debug("Sent message", "text", text)

	return nil
}

// ReadMessage reads and decodes the next message.
// Returns io.EOF when the bridge has closed its end.
func (c *Communicator) ReadMessage() (string, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("read message: %w", err)
		}

		return "", io.EOF
	}

	return codec.Decode(c.scanner.Text())
}

// Listen reads messages until the input ends or ctx is cancelled, passing
// each one to OnMessage. Malformed messages are reported to OnError and
// skipped. OnClose runs before Listen returns.
//
// Returns nil at end of input, ctx.Err() on cancellation, or the read error.
// Cancellation is observed between messages.
func (c *Communicator) Listen(ctx context.Context) error {
	c.log.Debug("Listening for incoming messages")

	defer func() {
		c.log.Debug("Listening stopped")

		if c.opts.OnClose != nil {
			c.opts.OnClose()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		text, err := c.ReadMessage()
		if stderrors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			if _, malformed := stderrors.AsType[*errors.MalformedWireMessageError](err); malformed {
				c.log.Debug("Skipping malformed message", "error", err)
				c.reportError(err)

				continue
			}

			return err
		}

		c.log.Debug("Received message", "text", text)

		if c.opts.OnMessage == nil {
			continue
		}

		if err := c.opts.OnMessage(text); err != nil {
			c.reportError(err)
		}
	}
}

func (c *Communicator) reportError(err error) {
	if c.opts.OnError != nil {
		c.opts.OnError(err)
	}
}
