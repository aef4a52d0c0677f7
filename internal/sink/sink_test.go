package sink

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_PlainOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	console := NewConsole(&buf)
	console.Print("CHILD message: ", "hello", HintInbound)

	require.Equal(t, "CHILD message: hello\n", buf.String())
}

func TestConsole_ColorsWithForcedProfile(t *testing.T) {
	var buf bytes.Buffer

	console := NewConsoleWithProfile(&buf, termenv.ANSI)
	console.Print("ERROR: ", "boom", HintError)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "ERROR: "))
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "boom")
}

func TestConsole_UnknownHintFallsBackToPlain(t *testing.T) {
	var buf bytes.Buffer

	console := NewConsoleWithProfile(&buf, termenv.ANSI)
	console.Print("", "text", Hint(42))

	require.Equal(t, "text\n", buf.String())
}

func TestConsole_ConcurrentPrintsDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer

	console := NewConsole(&buf)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			console.Print("label: ", strings.Repeat("x", 100), HintPlain)
		})
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 20)

	for _, line := range lines {
		assert.Equal(t, "label: "+strings.Repeat("x", 100), line)
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()

	rec.Print("a: ", "one", HintOutbound)
	rec.Print("b: ", "two", HintError)
	rec.Print("c: ", "three", HintInbound)

	entries := rec.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Label: "a: ", Text: "one", Hint: HintOutbound}, entries[0])

	errs := rec.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "two", errs[0].Text)

	select {
	case <-rec.Updated():
	default:
		t.Fatal("expected update notification")
	}
}

func TestHintString(t *testing.T) {
	assert.Equal(t, "plain", HintPlain.String())
	assert.Equal(t, "outbound", HintOutbound.String())
	assert.Equal(t, "inbound", HintInbound.String())
	assert.Equal(t, "error", HintError.String())
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() {
		Discard.Print("x", "y", HintError)
	})
}
