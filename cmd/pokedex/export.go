package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/K4zzu/Nfc-PokeDex/internal/report"
)

// ErrConflictingFormats is returned when both --json and --markdown are set.
var ErrConflictingFormats = errors.New("conflicting export formats: --json and --markdown cannot be used together")

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the captured collection",
		Long: `Export writes every captured species with its types, size and base
stats. Species data is fetched first unless --offline is set.

Examples:
  # Plain text to stdout
  pokedex export

  # Markdown with a progress chart
  pokedex export --markdown -o dex.md

  # JSON
  pokedex export --json`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Write JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Write Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write to the given file instead of stdout")
	cmd.Flags().Bool("offline", false, "Do not fetch species data")
	cmd.Flags().Bool("stats", false, "Include base stats in plain text output")

	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return ErrConflictingFormats
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	offline, err := cmd.Flags().GetBool("offline")
	if err != nil {
		return err
	}
	withStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := setupApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	ids := a.store.IDs()
	if !offline && len(ids) > 0 {
		if err := a.cache.Prefetch(ctx, ids, a.cfg.PrefetchConcurrency); err != nil {
			return err
		}
	}
	lastID, _ := a.ctrl.LastID()
	collection := report.NewCollection(ids, a.cache.Peek, lastID, time.Now())

	output, closeOutput, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}

	var w report.Writer
	switch {
	case asJSON:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case asMarkdown:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(withStats))
	}

	if _, err := w.Write(collection); err != nil {
		_ = closeOutput() //nolint:errcheck // write error takes precedence
		return err
	}
	return closeOutput()
}
