package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/K4zzu/Nfc-PokeDex/internal/capture"
	"github.com/K4zzu/Nfc-PokeDex/internal/config"
	"github.com/K4zzu/Nfc-PokeDex/internal/controller"
	"github.com/K4zzu/Nfc-PokeDex/internal/database"
	pokelog "github.com/K4zzu/Nfc-PokeDex/internal/log"
	"github.com/K4zzu/Nfc-PokeDex/internal/metrics"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
	"github.com/K4zzu/Nfc-PokeDex/internal/sound"
	"github.com/K4zzu/Nfc-PokeDex/internal/species"
)

// app wires the components of one pokedex session.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *database.DB
	store   *capture.Store
	cache   *species.Cache
	history *navigation.MemoryHistory
	metrics *metrics.Recorder
	ctrl    *controller.Controller
	bell    *sound.Bell
}

// appOptions adjusts how a command's session is built.
type appOptions struct {
	// renderer receives every view; nil leaves the controller silent.
	renderer controller.Renderer

	// start is the initial location.
	start navigation.Location
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the configuration file, the environment and
// the command line, then validates the result.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path must exist; otherwise a missing file means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	noSound, err := cmd.Flags().GetBool("no-sound")
	if err != nil {
		return nil, err
	}
	if noSound {
		cfg.Sound = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the session logger. Every line carries the session id.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return pokelog.NewSecureLogger(w, verbose).With("session", uuid.NewString())
}

// newApp opens storage and builds the controller for cfg.
func newApp(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts appOptions) (*app, error) {
	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger, metrics: metrics.New()}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		// The session still runs; captures are kept in memory only.
		logger.Warn("failed to open database, progress will not be saved", "dir", cfg.DBDir, "error", err)
		a.store = capture.Open(ctx, nil, capture.WithLogger(logger))
	} else {
		a.db = db
		a.store = capture.Open(ctx, db, capture.WithLogger(logger))
		logger.Debug("database opened", "path", db.Path())
	}

	client, err := species.NewClient(cfg.APIBaseURL,
		species.WithTimeout(cfg.APITimeout),
		species.WithUserAgent(cfg.UserAgent),
		species.WithSOCKS5Proxy(cfg.Proxy),
	)
	if err != nil {
		a.close()
		return nil, err
	}
	a.cache = species.NewCache(client,
		species.WithFetchTimeout(cfg.APITimeout),
		species.WithCacheLogger(logger),
	)

	var player sound.Player = sound.Nop{}
	if cfg.Sound {
		a.bell = sound.NewBell(cmd.ErrOrStderr(), sound.DefaultQueueSize)
		player = a.bell
	}

	start := opts.start
	if start.Path == "" {
		start = navigation.Root
	}
	a.history = navigation.NewMemoryHistory(start)

	ctrlOpts := []controller.Option{
		controller.WithSound(player),
		controller.WithMetrics(a.metrics),
		controller.WithLogger(logger),
		controller.WithSerials(cfg.Serials),
		controller.WithLogLimit(cfg.LogLimit),
		controller.WithHighlightDuration(cfg.HighlightDuration),
	}
	if opts.renderer != nil {
		ctrlOpts = append(ctrlOpts, controller.WithRenderer(opts.renderer))
	}
	a.ctrl = controller.New(a.store, a.cache, navigation.NewSync(a.history), ctrlOpts...)
	a.cache.OnFailure(a.ctrl.HandleFetchFailure)
	return a, nil
}

// close releases the session's resources.
func (a *app) close() {
	if a.ctrl != nil {
		a.ctrl.Close()
	}
	if a.bell != nil {
		a.bell.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", "error", err)
		}
	}
}

// setupApp builds the config and app for cmd.
func setupApp(ctx context.Context, cmd *cobra.Command, opts appOptions) (*app, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cmd, cfg, opts)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openOutput returns stdout or a newly created file at path.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// savedAt returns when the captured set was last written.
func (a *app) savedAt(ctx context.Context) (time.Time, bool) {
	if a.db == nil {
		return time.Time{}, false
	}
	t, ok, err := a.db.UpdatedAt(ctx, capture.RecordKey)
	if err != nil {
		a.logger.Debug("failed to read save time", "error", err)
		return time.Time{}, false
	}
	return t, ok
}
