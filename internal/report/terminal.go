package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/K4zzu/Nfc-PokeDex/internal/controller"
	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

const (
	// DefaultLogTail is the number of log lines shown under the grid.
	DefaultLogTail = 5

	gridColumns = 5
)

// TerminalRenderer draws controller views as plain text frames.
// It implements controller.Renderer.
type TerminalRenderer struct {
	mu      sync.Mutex
	output  io.Writer
	logTail int
	clear   bool
}

// TerminalOption configures a TerminalRenderer.
type TerminalOption func(*TerminalRenderer)

// WithLogTail sets how many log lines are shown. Zero hides the log.
func WithLogTail(n int) TerminalOption {
	return func(r *TerminalRenderer) {
		if n >= 0 {
			r.logTail = n
		}
	}
}

// WithClearScreen emits an ANSI clear sequence before each frame.
func WithClearScreen(enabled bool) TerminalOption {
	return func(r *TerminalRenderer) {
		r.clear = enabled
	}
}

// NewTerminalRenderer creates a TerminalRenderer that draws to output.
func NewTerminalRenderer(output io.Writer, opts ...TerminalOption) *TerminalRenderer {
	r := &TerminalRenderer{output: output, logTail: DefaultLogTail}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements controller.Renderer. Frames are written whole so that
// concurrent renders do not interleave.
func (r *TerminalRenderer) Render(v controller.View) {
	frame := FormatView(v, r.logTail)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clear {
		frame = "\033[H\033[2J" + frame
	}
	_, _ = io.WriteString(r.output, frame) //nolint:errcheck // terminal output is best effort
}

// FormatView returns the text frame for v with at most logTail log lines.
func FormatView(v controller.View, logTail int) string {
	var sb strings.Builder

	last := "-"
	if v.LastID.Valid() {
		last = v.LastID.String()
	}
	fmt.Fprintf(&sb, "Captured %d/%d   Last: %s", v.TotalCaptured, model.MaxID, last)
	if v.Scanning {
		sb.WriteString("   [scanning]")
	}
	if v.Degraded {
		sb.WriteString("   [not saved]")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Pokédex (%s–%s)   Page %d/%d\n", v.First, v.Last, v.Page, v.TotalPages)
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")

	for i, card := range v.Cards {
		sb.WriteString(formatCard(card))
		if (i+1)%gridColumns == 0 || i == len(v.Cards)-1 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}

	if v.Detail != nil {
		sb.WriteString(formatDetail(v.Detail))
	}

	if logTail > 0 && len(v.Log) > 0 {
		sb.WriteString(strings.Repeat("-", 60))
		sb.WriteString("\n")
		start := max(0, len(v.Log)-logTail)
		for _, e := range v.Log[start:] {
			fmt.Fprintf(&sb, "[%s] %s\n", e.Time.Format("15:04:05"), e.Message)
		}
	}
	return sb.String()
}

// formatCard renders one grid cell: the id, a capture marker and the name
// of captured species whose record is cached.
func formatCard(card controller.Card) string {
	marker := " "
	switch {
	case card.Highlighted:
		marker = "*"
	case card.Loading:
		marker = "~"
	case card.Captured:
		marker = "+"
	}
	name := ""
	if card.Captured && card.Record != nil {
		name = DisplayName(card.Record.Name)
	}
	return fmt.Sprintf("%s%s %-10.10s", marker, card.ID, name)
}

func formatDetail(d *controller.Detail) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	status := "not captured"
	if d.Captured {
		status = "captured"
	}
	if d.Record == nil {
		fmt.Fprintf(&sb, "%s  ???  (%s)\n", d.ID, status)
		sb.WriteString("No data available.\n")
	} else {
		s := d.Record
		fmt.Fprintf(&sb, "%s  %s  (%s)\n", d.ID, DisplayName(s.Name), status)
		fmt.Fprintf(&sb, "Types:  %s\n", strings.Join(s.TypeNames(), ", "))
		fmt.Fprintf(&sb, "Weight: %.1f kg   Height: %.1f m\n", s.WeightKg(), s.HeightM())
		parts := make([]string, 0, len(s.Stats))
		for _, p := range orderedStats(speciesStats(s)) {
			parts = append(parts, p.Label+" "+p.Value)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, "Stats:  %s\n", strings.Join(parts, "  "))
		}
	}
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	return sb.String()
}
