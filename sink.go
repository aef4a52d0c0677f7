package linebridge

import (
	"io"

	"github.com/wagiedev/linebridge/internal/sink"
)

// Sink receives human-readable traffic traces and failure reports.
type Sink = sink.Sink

// Hint is an emphasis hint for a diagnostic message.
type Hint = sink.Hint

// Emphasis hints.
const (
	HintPlain    = sink.HintPlain
	HintOutbound = sink.HintOutbound
	HintInbound  = sink.HintInbound
	HintError    = sink.HintError
)

// Recorder is a Sink that keeps every entry in memory.
type Recorder = sink.Recorder

// SinkEntry is one entry captured by a Recorder.
type SinkEntry = sink.Entry

// DiscardSink drops all diagnostics.
var DiscardSink = sink.Discard

// NewConsoleSink returns a sink that writes colored lines to w.
func NewConsoleSink(w io.Writer) Sink {
	return sink.NewConsole(w)
}

// NewRecorder returns an empty in-memory sink.
func NewRecorder() *Recorder {
	return sink.NewRecorder()
}
