package commands

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
	"github.com/systmms/envstore/internal/store"
)

// BackendHealth captures the probe result for one configured backend.
type BackendHealth struct {
	Name    string
	Type    string
	Status  string
	Message string
	Error   string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check backend connectivity and configuration",
		Long: `Verify that configured backends are reachable and credentials work.

This command checks:
- Configuration file validity
- Backend authentication and connectivity

Each configured backend is probed with a cheap read-only call.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Info("Checking envstore configuration...")
			if err := cfg.Load(); err != nil {
				cfg.Logger.Error("Configuration error: %v", err)
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.Logger.Info("✓ Configuration loaded successfully")

			registry := store.NewRegistry(cfg.Logger)

			names := make([]string, 0, len(cfg.Definition.Backends))
			for name := range cfg.Definition.Backends {
				names = append(names, name)
			}
			sort.Strings(names)

			results := make([]BackendHealth, 0, len(names))
			failures := 0

			for _, name := range names {
				backendCfg := cfg.Definition.Backends[name]
				health := BackendHealth{
					Name: name,
					Type: backendCfg.Type,
				}

				st, err := registry.Create(name, backendCfg)
				if err != nil {
					health.Status = "error"
					health.Error = err.Error()
					failures++
					results = append(results, health)
					continue
				}

				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				err = st.Validate(ctx)
				cancel()

				if err != nil {
					health.Status = "error"
					health.Error = err.Error()
					failures++
				} else {
					health.Status = "healthy"
					health.Message = "Backend is ready"
				}
				results = append(results, health)
			}

			printHealthReport(cmd, results)

			if failures > 0 {
				return fmt.Errorf("%d of %d backends failed the health check", failures, len(results))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-backend probe timeout")

	return cmd
}

func printHealthReport(cmd *cobra.Command, results []BackendHealth) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BACKEND\tTYPE\tSTATUS\tDETAIL")
	for _, r := range results {
		detail := r.Message
		if r.Error != "" {
			detail = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Type, r.Status, detail)
	}
	tw.Flush()
}
