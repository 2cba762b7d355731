package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/K4zzu/Nfc-PokeDex/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Pokédex over HTTP",
		Long: `Serve exposes the Pokédex on a local HTTP address.

Opening /pokemon/25 or /?id=25 captures the species, as entering the app
on that URL would. The /api routes accept tag readings, manual entries,
searches, paging and history navigation, and /metrics reports activity
counters in Prometheus format.

Examples:
  pokedex serve
  pokedex serve --listen 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", "", "Listen address (default from configuration, 127.0.0.1:8080)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	listen, err := cmd.Flags().GetString("listen")
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

	if listen == "" {
		listen = a.cfg.ListenAddr
	}

	stop := a.ctrl.Start(ctx)
	defer stop()

	srv := server.New(a.ctrl, a.history,
		server.WithMetricsHandler(a.metrics.Handler()),
		server.WithLogger(a.logger),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", listen)
	return srv.ListenAndServe(ctx, listen)
}
