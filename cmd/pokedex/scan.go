package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/K4zzu/Nfc-PokeDex/internal/report"
	"github.com/K4zzu/Nfc-PokeDex/internal/scan"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Capture species from tag reads",
		Long: `Scan reads tags until interrupted and captures every species found.

Without --device, each line typed on standard input is treated as the text
of a tag (for example "POKEMON:25" or a species URL). With --device, tag
reads are taken from a reader bridge that writes one JSON reading per line:

  {"serialNumber":"04:a2:1b","records":[{"recordType":"text","data":"UE9LRU1PTjoyNQ=="}]}

Examples:
  # Type tag payloads by hand
  pokedex scan

  # Read from a reader bridge FIFO
  pokedex scan --device /run/nfc/readings`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("device", "d", "", "Reader bridge path producing JSON readings")
	cmd.Flags().Int("log-tail", report.DefaultLogTail, "Number of log lines shown under the grid")
	cmd.Flags().Bool("clear", false, "Clear the screen before each frame")

	return cmd
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	device, err := cmd.Flags().GetString("device")
	if err != nil {
		return err
	}
	logTail, err := cmd.Flags().GetInt("log-tail")
	if err != nil {
		return err
	}
	clearScreen, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	renderer := report.NewTerminalRenderer(cmd.OutOrStdout(),
		report.WithLogTail(logTail),
		report.WithClearScreen(clearScreen),
	)
	a, err := setupApp(ctx, cmd, appOptions{renderer: renderer})
	if err != nil {
		return err
	}
	defer a.close()

	var src scan.Source
	if device != "" {
		src = scan.NewDevice(device)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Type a tag payload per line; Ctrl-D or Ctrl-C to stop.")
		src = scan.NewSimulator(cmd.InOrStdin())
	}

	stop := a.ctrl.Start(ctx)
	defer stop()

	done, err := a.ctrl.StartScan(ctx, src)
	if err != nil {
		return err
	}
	<-done
	return nil
}
