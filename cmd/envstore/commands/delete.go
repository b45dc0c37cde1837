package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
	eserrors "github.com/systmms/envstore/internal/errors"
)

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	var backendName string

	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a parameter",
		Long: `Delete the parameter at the given path.

Deleting a path that does not exist is an error, so a successful delete
always means the parameter was actually removed.

Examples:
  envstore delete /app/staging/db/password`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, backendType, err := buildStore(cfg, backendName)
			if err != nil {
				return err
			}

			if err := st.Delete(context.Background(), args[0]); err != nil {
				return eserrors.StoreError(backendType, "delete", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "", "Backend name from the config file")

	return cmd
}
