package report

import (
	"fmt"
	"io"
	"strings"
)

// SimpleWriter outputs a plain text collection listing.
type SimpleWriter struct {
	baseWriter

	// verbose adds base stats to each entry.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables base stats in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the collection in human-readable format.
func (w *SimpleWriter) Write(c *Collection) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                         POKEDEX\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Captured:       %d/%d (%.1f%%)\n", c.TotalCaptured, c.MaxID, c.Progress())
	if c.LastID.Valid() {
		fmt.Fprintf(&sb, "Last captured:  %s\n", c.LastID)
	}
	fmt.Fprintf(&sb, "Generated:      %s\n\n", c.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	if len(c.Entries) == 0 {
		sb.WriteString("  No species captured yet\n")
	}
	for _, e := range c.Entries {
		fmt.Fprintf(&sb, "  %s  %-14s", e.ID, DisplayName(e.Name))
		if len(e.Types) > 0 {
			fmt.Fprintf(&sb, "  %s", strings.Join(e.Types, "/"))
		}
		if e.Fetched {
			fmt.Fprintf(&sb, "  %.1f kg  %.1f m", e.WeightKg, e.HeightM)
		}
		sb.WriteString("\n")
		if w.verbose && len(e.Stats) > 0 {
			parts := make([]string, 0, len(e.Stats))
			for _, p := range orderedStats(e.Stats) {
				parts = append(parts, p.Label+" "+p.Value)
			}
			fmt.Fprintf(&sb, "        %s\n", strings.Join(parts, "  "))
		}
	}
	sb.WriteString("\n")
	return io.WriteString(w.output, sb.String())
}
