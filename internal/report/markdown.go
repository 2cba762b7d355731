package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs the collection as Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the collection in Markdown format.
func (w *MarkdownWriter) Write(c *Collection) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, c)
	w.writeProgress(md, c)
	w.writeEntries(md, c)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, c *Collection) {
	md.H1("Pokédex")
	md.PlainText("")

	last := "-"
	if c.LastID.Valid() {
		last = c.LastID.String()
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Captured", strconv.Itoa(c.TotalCaptured) + "/" + strconv.Itoa(c.MaxID)},
			{"Last Captured", last},
			{"Generated", c.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeProgress(md *markdown.Markdown, c *Collection) {
	md.H2("Progress")
	md.PlainText("")

	if c.TotalCaptured > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Captured Species"),
			piechart.WithShowData(true),
		)
		chart.LabelAndIntValue("Captured", uint64(c.TotalCaptured))
		if missing := c.MaxID - c.TotalCaptured; missing > 0 {
			chart.LabelAndIntValue("Missing", uint64(missing))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case c.Complete():
		md.Tip("Every species has been captured.")
	case c.TotalCaptured == 0:
		md.Note("No species captured yet. Scan a tag to start.")
	default:
		md.Note(fmt.Sprintf("%.1f%% of the Pokédex is complete.", c.Progress()))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeEntries(md *markdown.Markdown, c *Collection) {
	md.H2("Captured Species")
	md.PlainText("")

	if len(c.Entries) == 0 {
		md.PlainText("Nothing to list.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(c.Entries))
	var missing []string
	for _, e := range c.Entries {
		if !e.Fetched {
			missing = append(missing, e.ID.String())
			rows = append(rows, []string{e.ID.String(), "-", "-", "-", "-", "-"})
			continue
		}
		stats := make([]string, 0, len(e.Stats))
		for _, p := range orderedStats(e.Stats) {
			stats = append(stats, p.Label+" "+p.Value)
		}
		rows = append(rows, []string{
			e.ID.String(),
			DisplayName(e.Name),
			strings.Join(e.Types, ", "),
			strconv.FormatFloat(e.WeightKg, 'f', 1, 64) + " kg",
			strconv.FormatFloat(e.HeightM, 'f', 1, 64) + " m",
			strings.Join(stats, " / "),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Name", "Types", "Weight", "Height", "Base Stats"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(missing) > 0 {
		md.Warningf("No data could be fetched for %d species.", len(missing))
		md.BulletList(missing...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Exported by pokedex*")
}
