package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pokedex.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pokedex",
		Short: "NFC Pokédex: capture species by tag, id or link",
		Long: `pokedex keeps a collection of captured species (ids 1 to 898).

Species are captured by scanning a tag, by typing an id or name, or by
opening a species URL. Captures are saved to a local SQLite database and
species data is fetched from the species API on demand.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pokedex in current or home directory)")
	cmd.PersistentFlags().Bool("no-sound", false, "Disable terminal bell cues")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCaptureCmd())
	cmd.AddCommand(NewOpenCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
