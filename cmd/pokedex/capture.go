package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
	"github.com/K4zzu/Nfc-PokeDex/internal/report"
)

// printView writes the final frame of a one-shot command.
func printView(cmd *cobra.Command, a *app) {
	fmt.Fprint(cmd.OutOrStdout(), report.FormatView(a.ctrl.View(), report.DefaultLogTail))
}

// NewCaptureCmd creates the capture command.
func NewCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture <text>",
		Short: "Capture a species by id or tag text",
		Long: `Capture records a species as if its tag had been scanned.

The text may be a bare id, a tag payload such as "POKEMON:25", or a
species URL.

Examples:
  pokedex capture 25
  pokedex capture "POKEMON:133"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := setupApp(ctx, cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			err = a.ctrl.HandleManual(ctx, strings.Join(args, " "))
			printView(cmd, a)
			return err
		},
	}
}

// NewOpenCmd creates the open command.
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Enter the Pokédex on a URL",
		Long: `Open processes a location as if the app had been entered on it.

A location that encodes a species (/pokemon/25, ?id=25 or ?pokemon=25)
captures it. Any other location just shows the grid.

Examples:
  pokedex open /pokemon/25
  pokedex open "https://dex.example/?pokemon=133"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := navigation.ParseLocation(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := setupApp(ctx, cmd, appOptions{start: loc})
			if err != nil {
				return err
			}
			defer a.close()

			stop := a.ctrl.Start(ctx)
			defer stop()
			printView(cmd, a)
			return nil
		},
	}
}

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find a species by id or name",
		Long: `Search moves the grid to a species. Captured species also get their
detail shown. Searching never captures.

Examples:
  pokedex search 25
  pokedex search pikachu`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := setupApp(ctx, cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			query := strings.Join(args, " ")
			_, found := a.ctrl.Search(ctx, query)
			printView(cmd, a)
			if !found {
				return fmt.Errorf("no species found for %q", query)
			}
			return nil
		},
	}
}

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the detail of a captured species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
			if err != nil {
				return fmt.Errorf("%w: %q", model.ErrInvalidIdentifier, args[0])
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := setupApp(ctx, cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			err = a.ctrl.ShowCard(ctx, model.ID(n))
			printView(cmd, a)
			return err
		},
	}
}
