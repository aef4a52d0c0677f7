package sink

// Hint is an emphasis hint for a diagnostic message.
type Hint int

const (
	// HintPlain renders text without emphasis.
	HintPlain Hint = iota
	// HintOutbound marks traffic written to the child.
	HintOutbound
	// HintInbound marks traffic received from the child.
	HintInbound
	// HintError marks failures and error-stream output.
	HintError
)

// String returns the hint name.
func (h Hint) String() string {
	switch h {
	case HintOutbound:
		return "outbound"
	case HintInbound:
		return "inbound"
	case HintError:
		return "error"
	default:
		return "plain"
	}
}

// Sink receives human-readable diagnostics.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Print renders label followed by text, emphasizing text per hint.
	Print(label, text string, hint Hint)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Print(string, string, Hint) {}
