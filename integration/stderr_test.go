//go:build integration

package integration

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/linebridge"
)

func TestPython_StderrIsRaw(t *testing.T) {
	b, _, stderr, _ := startEcho(t)

	require.NoError(t, b.Send("warn 1,2,3 not decoded"))

	var got strings.Builder
	for !strings.Contains(got.String(), "\n") {
		got.WriteString(receive(t, stderr))
	}

	assert.Equal(t, "1,2,3 not decoded\n", got.String())
}

func TestPython_ReconfigureReplacesListeners(t *testing.T) {
	b, first, _, _ := startEcho(t)

	second := make(chan string, 1)
	b.Configure(
		linebridge.WithLogging(false),
		linebridge.WithOnData(func(text string) { second <- text }),
	)

	require.NoError(t, b.Send("after"))
	assert.Equal(t, "after", receive(t, second))
	assert.Empty(t, first)
}

func TestPython_InterpreterMissing(t *testing.T) {
	skipIfNoPython(t)

	_, err := linebridge.New(echoPeer(t), linebridge.WithInterpreter("linebridge-no-such-python"))
	require.Error(t, err)

	spawnErr, ok := errors.AsType[*linebridge.SpawnError](err)
	require.True(t, ok)
	assert.Equal(t, "linebridge-no-such-python", spawnErr.Interpreter)
}
