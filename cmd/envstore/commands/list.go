package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
	eserrors "github.com/systmms/envstore/internal/errors"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	var (
		backendName string
		jsonOutput  bool
		showValues  bool
		pathsOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List parameters under a path prefix",
		Long: `List all parameters whose path starts with the given prefix.

Without a prefix the whole tree is listed. Secret values are redacted in
table output; use --json --values to see them.

Examples:
  # List everything under an application
  envstore list /app/prod

  # Paths only, for scripting
  envstore list /app/prod --paths

  # Full metadata including values
  envstore list /app/prod --json --values`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := "/"
			if len(args) == 1 {
				prefix = args[0]
			}

			st, backendType, err := buildStore(cfg, backendName)
			if err != nil {
				return err
			}

			params, err := st.List(context.Background(), prefix)
			if err != nil {
				return eserrors.StoreError(backendType, "list", err)
			}

			out := cmd.OutOrStdout()

			switch {
			case pathsOnly:
				for _, p := range params {
					fmt.Fprintln(out, p.Path)
				}
			case jsonOutput:
				items := make([]parameterJSON, 0, len(params))
				for _, p := range params {
					items = append(items, toParameterJSON(p, showValues))
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			default:
				if len(params) == 0 {
					cfg.Logger.Info("No parameters found under %s", prefix)
					return nil
				}
				printParameterTable(out, params, showValues)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "", "Backend name from the config file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output parameters as JSON")
	cmd.Flags().BoolVar(&showValues, "values", false, "Include values in the output")
	cmd.Flags().BoolVar(&pathsOnly, "paths", false, "Print parameter paths only")

	return cmd
}
