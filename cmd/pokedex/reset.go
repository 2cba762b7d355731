package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewResetCmd creates the reset command.
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget every captured species",
		Long: `Reset clears the captured set. It asks for confirmation unless --yes is
given.`,
		Args: cobra.NoArgs,
		RunE: runResetCmd,
	}

	cmd.Flags().BoolP("yes", "y", false, "Reset without asking")

	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !yes && !confirm(cmd, "Reset all progress? This cannot be undone. [y/N]: ") {
		fmt.Fprintln(out, "Reset cancelled.")
		return nil
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := setupApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	before := a.store.Count()
	a.ctrl.Reset(ctx)
	if a.store.Degraded() {
		return errors.New("progress reset for this session only: the database could not be written")
	}
	fmt.Fprintf(out, "Progress reset (%d species forgotten).\n", before)
	return nil
}

// confirm asks prompt on the command's input and accepts y or yes.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
