package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/K4zzu/Nfc-PokeDex/internal/report"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a page of the grid",
		Long: `List shows one page of 20 species with their capture state.

Examples:
  # First page
  pokedex list

  # Page 2 (#021 to #040) with names of captured species
  pokedex list --page 2 --fetch`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().IntP("page", "p", 1, "Page to show (1 to 45)")
	cmd.Flags().BoolP("fetch", "f", false, "Fetch data for captured species on the page")

	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		return err
	}
	fetch, err := cmd.Flags().GetBool("fetch")
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

	a.ctrl.SetPage(page)
	if fetch {
		if err := a.ctrl.PrefetchPage(ctx, a.cfg.PrefetchConcurrency); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.FormatView(a.ctrl.View(), 0))
	if t, ok := a.savedAt(ctx); ok {
		fmt.Fprintf(out, "Saved: %s\n", t.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
