package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"companypicker/internal/logging"
	"companypicker/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace the catalog with the companies in a JSON file",
	Long: `Replace the catalog of the configured store.

The file must hold a top-level array of {"id", "name", "logo"} objects.
The selection is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&storageDriver, "driver", "", "storage driver: file, bolt or sqlite")
	importCmd.Flags().StringVar(&storageDataDir, "data-dir", "", "directory holding the data files")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	companies, err := store.ReadCompaniesFile(args[0])
	if err != nil {
		return err
	}

	// the seed would race the import on an empty store
	cfg.Storage.CatalogSeed = ""
	s, err := store.Open(cmd.Context(), cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	importer, ok := s.(store.CatalogImporter)
	if !ok {
		return fmt.Errorf("storage driver %q does not support import", cfg.Storage.Driver)
	}
	if err := importer.ReplaceCatalog(cmd.Context(), companies); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	logger.Info("catalog imported", zap.String("file", args[0]), zap.Int("count", len(companies)))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d companies\n", len(companies))
	return nil
}
