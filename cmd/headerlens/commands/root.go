package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/busybox42/headerlens/internal/config"
)

var (
	// Global configuration
	configPath string
	cfg        *config.Config

	// Root command
	rootCmd = &cobra.Command{
		Use:   "headerlens",
		Short: "Headerlens email header analyzer",
		Long: `A tool for triaging suspicious or misdelivered email by its headers.
Headerlens parses raw header text, resolves canonical addressing fields and
decodes the Microsoft Exchange anti-spam and authentication headers.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return
			}

			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
