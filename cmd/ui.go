package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"companypicker/internal/client"
	"companypicker/internal/config"
	"companypicker/internal/eventbus"
	"companypicker/internal/logging"
	"companypicker/internal/logo"
	"companypicker/internal/ui"
	"companypicker/internal/ui/services/persist"
)

var uiServerURL string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal company picker",
	Long: `Open the company picker against a running store.

The selection is loaded once at startup and saved after every change.
This is the default command.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, uiCmd} {
		c.Flags().StringVar(&uiServerURL, "server", "", "store base URL (overrides client.server_url)")
	}
	rootCmd.AddCommand(uiCmd)
}

func applyUIFlags(cfg *config.Config) {
	if uiServerURL != "" {
		cfg.Client.ServerURL = uiServerURL
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyUIFlags(cfg)

	// the terminal belongs to the UI, so logs go to a file
	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bus := eventbus.New(logger)

	api := client.New(cfg.Client.ServerURL, client.WithTimeout(cfg.Client.Timeout.Std()))
	logos := logo.NewLoader(
		logo.WithTimeout(cfg.Client.LogoTimeout.Std()),
		logo.WithSize(cfg.Client.LogoWidth, 2),
		logo.WithLogger(logger),
	)
	saver := persist.NewSaver(api, bus, logger, cfg.Client.Timeout.Std())

	model := ui.NewModel(bus, api, logos, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	model.SetProgram(p)

	// save results come back on bus goroutines; hand them to the program
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	unsubSaved := bus.Subscribe(eventbus.EventSelectionSaved, forward)
	unsubFailed := bus.Subscribe(eventbus.EventSelectionSaveFailed, forward)

	logger.Info("starting ui", zap.String("server", cfg.Client.ServerURL))
	_, runErr := p.Run()

	unsubSaved()
	unsubFailed()
	// closing the bus first hands changes still queued to the saver,
	// which then writes the last one before returning
	bus.Close()
	saver.Close()

	if runErr != nil {
		return fmt.Errorf("ui: %w", runErr)
	}
	return nil
}
