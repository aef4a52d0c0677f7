//go:build integration

package integration

import (
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/linebridge"
)

const replyTimeout = 10 * time.Second

// skipIfNoPython skips the test when no python3 interpreter is on PATH.
func skipIfNoPython(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}
}

func echoPeer(t *testing.T) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("testdata", "echo_peer.py"))
	require.NoError(t, err)

	return path
}

// startEcho starts the Python echo peer. Replies, stderr chunks and the exit
// code are delivered on the returned channels.
func startEcho(t *testing.T, opts ...linebridge.Option) (*linebridge.Bridge, <-chan string, <-chan string, <-chan int) {
	t.Helper()
	skipIfNoPython(t)

	data := make(chan string, 16)
	stderr := make(chan string, 16)
	closed := make(chan int, 1)

	base := []linebridge.Option{
		linebridge.WithInterpreter("python3"),
		linebridge.WithSink(linebridge.DiscardSink),
		linebridge.WithOnData(func(text string) { data <- text }),
		linebridge.WithOnError(func(chunk string) { stderr <- chunk }),
		linebridge.WithOnClose(func(code int) { closed <- code }),
	}

	b, err := linebridge.New(echoPeer(t), append(base, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() { _ = b.Kill() })

	return b, data, stderr, closed
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(replyTimeout):
		t.Fatal("timeout waiting for the python peer")

		var zero T

		return zero
	}
}
