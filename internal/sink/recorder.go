package sink

import "sync"

// Entry is one recorded diagnostic.
type Entry struct {
	Label string
	Text  string
	Hint  Hint
}

// Recorder is a Sink that keeps every entry in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	notify  chan struct{}
}

// Compile-time verification that Recorder implements Sink.
var _ Sink = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{notify: make(chan struct{}, 1)}
}

// Print records the entry.
func (r *Recorder) Print(label, text string, hint Hint) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Label: label, Text: text, Hint: hint})
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Entries returns a copy of all recorded entries in order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Errors returns the entries recorded with HintError.
func (r *Recorder) Errors() []Entry {
	var out []Entry

	for _, e := range r.Entries() {
		if e.Hint == HintError {
			out = append(out, e)
		}
	}

	return out
}

// Updated returns a channel that receives after new entries are recorded.
// Bursts are coalesced into a single notification.
func (r *Recorder) Updated() <-chan struct{} {
	return r.notify
}
