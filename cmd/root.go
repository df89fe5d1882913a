package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"companypicker/internal/config"
)

const appName = "companypicker"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Pick up to twenty companies from a catalog",
	Long: `Company Picker keeps a catalog of companies and a short list of selected ones.

Run 'companypicker serve' to start the JSON store, then 'companypicker' (or
'companypicker ui') to open the terminal picker against it.`,
	SilenceUsage: true,
	RunE:         runUI,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/companypicker/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func configService() config.ConfigService {
	if configPath != "" {
		return config.NewConfigServiceAt(configPath)
	}
	return config.NewConfigService()
}

func loadConfig() (*config.Config, error) {
	return configService().Load()
}
