package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
	eserrors "github.com/systmms/envstore/internal/errors"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		backendName string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Get a single parameter value",
		Long: `Retrieve a parameter and print its value.

By default only the raw value is printed, making the command suitable for
scripting. Use --json to include metadata.

Examples:
  # Get a value
  envstore get /app/prod/db/host

  # Get value with metadata in JSON format
  envstore get /app/prod/db/host --json

  # Use in scripts
  export DB_HOST=$(envstore get /app/prod/db/host)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, backendType, err := buildStore(cfg, backendName)
			if err != nil {
				return err
			}

			param, err := st.Get(context.Background(), args[0])
			if err != nil {
				return eserrors.StoreError(backendType, "get", err)
			}

			if jsonOutput {
				return printParameterJSON(cmd.OutOrStdout(), param, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), param.Value)
			return nil
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "", "Backend name from the config file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the parameter as JSON")

	return cmd
}
