package subprocess

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagiedev/linebridge/internal/config"
	"github.com/wagiedev/linebridge/internal/errors"
)

const eventTimeout = 10 * time.Second

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHelperTransport returns a transport that re-executes the test binary in
// the given helper mode.
func newHelperTransport(t *testing.T, mode string, extraEnv map[string]string) *ProcessTransport {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Helper process tests require Unix pipe semantics")
	}

	exe, err := os.Executable()
	require.NoError(t, err)

	targetPath := filepath.Join(t.TempDir(), "peer.py")
	require.NoError(t, os.WriteFile(targetPath, nil, 0o600))

	env := map[string]string{helperEnv: mode}
	for k, v := range extraEnv {
		env[k] = v
	}

	return NewProcessTransport(nopLogger(), targetPath, &config.Resolved{
		Interpreter: exe,
		Env:         env,
	})
}

// collect drains events until the channel closes.
func collect(t *testing.T, tr *ProcessTransport) []config.Event {
	t.Helper()

	var events []config.Event

	timeout := time.After(eventTimeout)

	for {
		select {
		case ev, ok := <-tr.Events():
			if !ok {
				return events
			}

			events = append(events, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d so far", len(events))
		}
	}
}

func linesOf(events []config.Event) []string {
	var lines []string

	for _, ev := range events {
		if ev.Kind == config.EventLine {
			lines = append(lines, ev.Data)
		}
	}

	return lines
}

func TestProcessTransport_EchoAndHalfClose(t *testing.T) {
	tr := newHelperTransport(t, "cat", nil)
	require.NoError(t, tr.Start(context.Background()))
	require.NotZero(t, tr.PID())

	require.NoError(t, tr.WriteLine([]byte("112,105,110,103\n")))
	require.NoError(t, tr.WriteLine([]byte("\n")))
	require.NoError(t, tr.EndInput())

	events := collect(t, tr)

	require.Equal(t, []string{"112,105,110,103", ""}, linesOf(events))

	last := events[len(events)-1]
	require.Equal(t, config.EventExit, last.Kind)
	require.Equal(t, 0, last.Code)
	require.NoError(t, last.Err)
}

func TestProcessTransport_TargetIsSoleArgument(t *testing.T) {
	tr := newHelperTransport(t, "args", nil)
	require.NoError(t, tr.Start(context.Background()))

	lines := linesOf(collect(t, tr))

	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0])
	assert.Equal(t, tr.target, lines[1])
}

func TestProcessTransport_ReassemblesSplitLines(t *testing.T) {
	tr := newHelperTransport(t, "split", nil)
	require.NoError(t, tr.Start(context.Background()))

	require.Equal(t, []string{"104,105", "106"}, linesOf(collect(t, tr)))
}

func TestProcessTransport_StderrChunks(t *testing.T) {
	tr := newHelperTransport(t, "stderr", nil)
	require.NoError(t, tr.Start(context.Background()))

	var stderr strings.Builder

	for _, ev := range collect(t, tr) {
		if ev.Kind == config.EventStderr {
			stderr.WriteString(ev.Data)
		}
	}

	require.Equal(t, "something went wrong", stderr.String())
}

func TestProcessTransport_ExitCode(t *testing.T) {
	tr := newHelperTransport(t, "exit", map[string]string{"LINEBRIDGE_EXIT_CODE": "3"})
	require.NoError(t, tr.Start(context.Background()))

	events := collect(t, tr)

	exits := 0

	for _, ev := range events {
		if ev.Kind == config.EventExit {
			exits++

			assert.Equal(t, 3, ev.Code)
			assert.Error(t, ev.Err)
		}
	}

	require.Equal(t, 1, exits)
}

func TestProcessTransport_Kill(t *testing.T) {
	tr := newHelperTransport(t, "sleep", nil)
	require.NoError(t, tr.Start(context.Background()))

	require.NoError(t, tr.Kill())
	require.NoError(t, tr.Kill())

	events := collect(t, tr)
	last := events[len(events)-1]

	require.Equal(t, config.EventExit, last.Kind)
	require.Equal(t, -1, last.Code)
}

func TestProcessTransport_ContextCancelKills(t *testing.T) {
	tr := newHelperTransport(t, "sleep", nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, tr.Start(ctx))

	cancel()

	events := collect(t, tr)
	require.Equal(t, config.EventExit, events[len(events)-1].Kind)
}

func TestProcessTransport_WriteAfterEndInput(t *testing.T) {
	tr := newHelperTransport(t, "cat", nil)
	require.NoError(t, tr.Start(context.Background()))

	require.NoError(t, tr.EndInput())
	require.NoError(t, tr.EndInput())

	err := tr.WriteLine([]byte("120\n"))
	require.ErrorIs(t, err, errors.ErrStdinClosed)

	collect(t, tr)
}

func TestProcessTransport_WriteAfterExit(t *testing.T) {
	tr := newHelperTransport(t, "exit", nil)
	require.NoError(t, tr.Start(context.Background()))

	collect(t, tr)

	require.Error(t, tr.WriteLine([]byte("120\n")))
}

func TestProcessTransport_StartTwice(t *testing.T) {
	tr := newHelperTransport(t, "cat", nil)
	require.NoError(t, tr.Start(context.Background()))

	require.ErrorIs(t, tr.Start(context.Background()), errors.ErrAlreadyStarted)

	require.NoError(t, tr.EndInput())
	collect(t, tr)
}

func TestProcessTransport_InterpreterNotFound(t *testing.T) {
	tr := NewProcessTransport(nopLogger(), "/tmp/peer.py", &config.Resolved{
		Interpreter: "linebridge-no-such-interpreter",
	})

	err := tr.Start(context.Background())
	require.Error(t, err)

	spawnErr, ok := stderrors.AsType[*errors.SpawnError](err)
	require.True(t, ok)
	require.Equal(t, "linebridge-no-such-interpreter", spawnErr.Interpreter)
	require.Zero(t, tr.PID())
}

func TestProcessTransport_BeforeStart(t *testing.T) {
	tr := NewProcessTransport(nopLogger(), "/tmp/peer.py", &config.Resolved{Interpreter: "python"})

	require.ErrorIs(t, tr.WriteLine([]byte("\n")), errors.ErrNotStarted)
	require.NoError(t, tr.EndInput())
	require.NoError(t, tr.Kill())
	require.Zero(t, tr.PID())
}

// TestConcurrentWrites_AreSerialized tests that concurrent writes never interleave.
func TestConcurrentWrites_AreSerialized(t *testing.T) {
	reader, writer := io.Pipe()
	defer reader.Close()

	tr := &ProcessTransport{
		log:   nopLogger(),
		stdin: writer,
	}

	var (
		got  strings.Builder
		done = make(chan struct{})
	)

	go func() {
		defer close(done)

		_, _ = io.Copy(&got, reader)
	}()

	line := []byte(strings.Repeat("1,", 500) + "1\n")

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			assert.NoError(t, tr.WriteLine(line))
		})
	}

	wg.Wait()
	require.NoError(t, writer.Close())
	<-done

	lines := strings.Split(strings.TrimSuffix(got.String(), "\n"), "\n")
	require.Len(t, lines, 10)

	for _, l := range lines {
		require.Equal(t, string(line[:len(line)-1]), l)
	}
}

func TestBuildEnvironment(t *testing.T) {
	env := buildEnvironment(map[string]string{"B_KEY": "2", "A_KEY": "1"})

	require.GreaterOrEqual(t, len(env), 2)
	require.Equal(t, []string{"A_KEY=1", "B_KEY=2"}, env[len(env)-2:])
}
