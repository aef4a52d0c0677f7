// Package sink provides diagnostic sinks for human-readable traffic traces.
//
// A Sink renders a labelled text message with an optional emphasis hint.
// The console sink colors the text with lipgloss (outbound green, inbound
// blue, errors red) and falls back to plain text when the writer is not a
// terminal. The Recorder keeps entries in memory for inspection.
package sink
