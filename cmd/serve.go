package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"companypicker/internal/config"
	"companypicker/internal/eventbus"
	"companypicker/internal/logging"
	"companypicker/internal/server"
	"companypicker/internal/store"
)

var (
	serveAddr      string
	storageDriver  string
	storageDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP store",
	Long: `Serve the catalog and the selection as JSON.

Endpoints:
  GET  /                    welcome message
  GET  /companies           the catalog
  GET  /selected-companies  the current selection
  POST /selected-companies  replace the selection

The server shuts down gracefully on Ctrl+C or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&storageDriver, "driver", "", "storage driver: file, bolt or sqlite")
	serveCmd.Flags().StringVar(&storageDataDir, "data-dir", "", "directory holding the data files")
	rootCmd.AddCommand(serveCmd)
}

func applyServeFlags(cfg *config.Config) {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if storageDriver != "" {
		cfg.Storage.Driver = storageDriver
	}
	if storageDataDir != "" {
		cfg.Storage.DataDir = storageDataDir
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyServeFlags(cfg)

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Verbose: verbose})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	defer bus.Close()

	bus.Subscribe(eventbus.EventSelectionPersisted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionPersistedEvent); ok {
			logger.Debug("selection persisted", zap.Int("count", event.Count))
		}
	})

	s, err := store.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	logger.Info("store opened",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("data_dir", cfg.Storage.DataDir))

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	}, s, bus, logger)

	return srv.ListenAndServe(ctx)
}
