package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console renders diagnostics to a writer with lipgloss styles.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Hint]lipgloss.Style
}

// Compile-time verification that Console implements Sink.
var _ Sink = (*Console)(nil)

// NewConsole creates a console sink writing to w.
// The color profile is detected from w; non-terminals get plain text.
func NewConsole(w io.Writer) *Console {
	return newConsole(w, lipgloss.NewRenderer(w))
}

// NewConsoleWithProfile creates a console sink that always renders with the
// given termenv color profile, regardless of what w is.
func NewConsoleWithProfile(w io.Writer, profile termenv.Profile) *Console {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(profile)

	return newConsole(w, renderer)
}

func newConsole(w io.Writer, r *lipgloss.Renderer) *Console {
	return &Console{
		w: w,
		styles: map[Hint]lipgloss.Style{
			HintPlain:    r.NewStyle(),
			HintOutbound: r.NewStyle().Foreground(lipgloss.Color("2")),
			HintInbound:  r.NewStyle().Foreground(lipgloss.Color("4")),
			HintError:    r.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

// Print writes one line: the label as-is, the text styled per hint.
func (c *Console) Print(label, text string, hint Hint) {
	style, ok := c.styles[hint]
	if !ok {
		style = c.styles[HintPlain]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintln(c.w, label+style.Render(text))
}
