package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/linebridge/internal/codec"
	"github.com/wagiedev/linebridge/internal/config"
	"github.com/wagiedev/linebridge/internal/errors"
	"github.com/wagiedev/linebridge/internal/target"
)

const (
	// stderrChunkSize is the read size for stderr. Each read becomes one event.
	stderrChunkSize = 4096
	// eventBufferSize is the capacity of the events channel.
	eventBufferSize = 64
)

// ProcessTransport implements Transport by spawning an interpreter subprocess.
type ProcessTransport struct {
	log         *slog.Logger
	target      string
	interpreter string
	dir         string
	env         map[string]string
	events      chan config.Event

	mu     sync.Mutex // Protects cmd and stdin
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser

	writeMu     sync.Mutex  // Serializes stdin writes
	stdinClosed atomic.Bool // Whether EndInput has been called
	killed      atomic.Bool // Whether Kill has been called
}

// Compile-time verification that ProcessTransport implements the Transport interface.
var _ config.Transport = (*ProcessTransport)(nil)

// NewProcessTransport creates a transport that runs targetPath with the
// resolved interpreter. Nothing is spawned until Start.
func NewProcessTransport(
	log *slog.Logger,
	targetPath string,
	resolved *config.Resolved,
) *ProcessTransport {
	return &ProcessTransport{
		log:         log.With("component", "process_transport"),
		target:      targetPath,
		interpreter: resolved.Interpreter,
		dir:         resolved.Dir,
		env:         resolved.Env,
		events:      make(chan config.Event, eventBufferSize),
	}
}

// Start spawns the interpreter with the target program as its only argument.
//
// The process is bound to ctx: cancelling it kills the process. Returns
// SpawnError if the interpreter cannot be found or started.
func (t *ProcessTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cmd != nil {
		return errors.ErrAlreadyStarted
	}

	t.log.Info("Starting child process", "interpreter", t.interpreter, "target", t.target)

	interpreterPath, err := target.LookupInterpreter(t.log, t.interpreter)
	if err != nil {
		return err
	}

	//nolint:gosec // G204: Launching the configured interpreter is the purpose of this transport
	cmd := exec.CommandContext(ctx, interpreterPath, t.target)
	cmd.Dir = t.dir

	if len(t.env) > 0 {
		cmd.Env = buildEnvironment(t.env)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		t.log.Error("Failed to create stdin pipe", "error", err)

		return &errors.SpawnError{Interpreter: t.interpreter, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.log.Error("Failed to create stdout pipe", "error", err)

		return &errors.SpawnError{Interpreter: t.interpreter, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		t.log.Error("Failed to create stderr pipe", "error", err)

		return &errors.SpawnError{Interpreter: t.interpreter, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		t.log.Error("Failed to start child process", "error", err)

		return &errors.SpawnError{Interpreter: t.interpreter, Err: fmt.Errorf("start process: %w", err)}
	}

	t.cmd = cmd
	t.stdin = stdin
	t.stdout = stdout
	t.stderr = stderr

	t.log.Info("Child process started", "pid", cmd.Process.Pid)

	go t.run()

	return nil
}

// Events returns the notification channel.
//
// Callers must drain it until it is closed; readers block when it is full.
// The channel is only closed for a transport that was started successfully.
func (t *ProcessTransport) Events() <-chan config.Event {
	return t.events
}

// run pumps stdout and stderr until both reach EOF, then waits for the
// process and emits the exit event.
func (t *ProcessTransport) run() {
	defer close(t.events)
	defer t.log.Debug("Event pump stopped")

	// Both pipes must be fully read before Wait.
	// See: https://pkg.go.dev/os/exec#Cmd.StdoutPipe
	var g errgroup.Group

	g.Go(t.readStdout)
	g.Go(t.readStderr)

	if err := g.Wait(); err != nil {
		t.log.Debug("Reader stopped with error", "error", err)
	}

	t.log.Debug("Waiting for child process to exit")

	waitErr := t.cmd.Wait()

	code := -1
	if state := t.cmd.ProcessState; state != nil {
		code = state.ExitCode()
	}

	switch {
	case waitErr == nil:
		t.log.Info("Child process exited successfully")
	case t.killed.Load():
		t.log.Debug("Child process terminated by Kill", "exit_code", code)
	default:
		t.log.Info("Child process exited with error", "exit_code", code, "error", waitErr)
	}

	t.events <- config.Event{Kind: config.EventExit, Code: code, Err: waitErr}
}

func (t *ProcessTransport) readStdout() error {
	scanner := codec.NewLineScanner(t.stdout)

	lineCount := 0

	for scanner.Scan() {
		lineCount++
		t.events <- config.Event{Kind: config.EventLine, Data: scanner.Text()}
	}

	t.log.Debug("Stdout reached EOF", "line_count", lineCount)

	if err := scanner.Err(); err != nil {
		t.log.Error("Scanner error while reading child output", "error", err)
		t.events <- config.Event{Kind: config.EventReadError, Err: fmt.Errorf("read stdout: %w", err)}

		// Keep the pipe drained so the child never blocks on a full buffer.
		_, _ = io.Copy(io.Discard, t.stdout)

		return err
	}

	return nil
}

func (t *ProcessTransport) readStderr() error {
	buf := make([]byte, stderrChunkSize)

	for {
		n, err := t.stderr.Read(buf)
		if n > 0 {
			t.events <- config.Event{Kind: config.EventStderr, Data: string(buf[:n])}
		}

		if stderrors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			t.log.Debug("Stderr read error", "error", err)
			t.events <- config.Event{Kind: config.EventReadError, Err: fmt.Errorf("read stderr: %w", err)}

			return err
		}
	}
}

// WriteLine writes one wire line to the child's stdin.
//
// Writes are serialized so concurrent callers never interleave lines.
// Returns ErrNotStarted before Start and ErrStdinClosed after EndInput.
func (t *ProcessTransport) WriteLine(line []byte) error {
	t.mu.Lock()
	stdin := t.stdin
	t.mu.Unlock()

	if stdin == nil {
		return errors.ErrNotStarted
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if t.stdinClosed.Load() {
		return errors.ErrStdinClosed
	}

	t.log.Debug("Writing line to child", "data_len", len(line))

	if _, err := stdin.Write(line); err != nil {
		t.log.Debug("Failed to write line to child", "error", err)

		return fmt.Errorf("write to stdin: %w", err)
	}

	return nil
}

// EndInput half-closes the child's stdin to signal that no more input
// will be sent. The child keeps running until it exits on its own.
func (t *ProcessTransport) EndInput() error {
	t.mu.Lock()
	stdin := t.stdin
	t.mu.Unlock()

	if stdin == nil {
		return nil
	}

	if !t.stdinClosed.CompareAndSwap(false, true) {
		return nil
	}

	t.log.Debug("Closing stdin pipe")

	return stdin.Close()
}

// Kill terminates the child process with SIGKILL. It's safe to call Kill
// multiple times or on an already-terminated process.
func (t *ProcessTransport) Kill() error {
	t.mu.Lock()
	cmd := t.cmd
	t.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}

	t.killed.Store(true)
	t.log.Debug("Killing child process", "pid", cmd.Process.Pid)

	if err := cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill child process (pid %d): %w", cmd.Process.Pid, err)
	}

	return nil
}

// PID returns the child's process id, or 0 before Start.
func (t *ProcessTransport) PID() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cmd == nil || t.cmd.Process == nil {
		return 0
	}

	return t.cmd.Process.Pid
}

// buildEnvironment returns the current environment extended with extra,
// in a stable order.
func buildEnvironment(extra map[string]string) []string {
	env := os.Environ()

	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		env = append(env, fmt.Sprintf("%s=%s", key, extra[key]))
	}

	return env
}
