package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/cmd/envstore/commands"
	"github.com/systmms/envstore/internal/config"
	"github.com/systmms/envstore/internal/logging"
	"github.com/systmms/envstore/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile    string
		noColor       bool
		debug         bool
		enableMetrics bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "envstore",
		Short: "Manage application parameters in cloud parameter stores",
		Long: `envstore reads and writes configuration parameters and secrets in
hierarchical cloud parameter stores such as AWS SSM Parameter Store.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			cfg.Path = configFile
			cfg.Logger = logger

			if enableMetrics {
				metrics.Init()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "envstore.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&enableMetrics, "metrics", false, "Record Prometheus operation metrics")

	rootCmd.AddCommand(
		commands.NewInitCommand(cfg),
		commands.NewPutCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewDeleteCommand(cfg),
		commands.NewUpdateCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
