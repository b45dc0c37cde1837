package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
	eserrors "github.com/systmms/envstore/internal/errors"
	"github.com/systmms/envstore/pkg/paramstore"
)

func NewUpdateCommand(cfg *config.Config) *cobra.Command {
	var (
		backendName string
		typeName    string
		description string
		kmsKeyID    string
		tierName    string
		fromStdin   bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "update <path> [value]",
		Short: "Update an existing parameter",
		Long: `Replace the value of an existing parameter and bump its version.

Unlike 'put --overwrite', update fails when the parameter does not exist,
so a typo in the path can never silently create a new parameter.

Examples:
  envstore update /app/prod/db/host db2.example.com

  echo -n "n3w-s3cret" | envstore update /app/prod/db/password --type secret --stdin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			typ, err := paramstore.ParseType(typeName)
			if err != nil {
				return eserrors.UserError{
					Message:    err.Error(),
					Suggestion: "Use --type text, --type secret, or --type list",
				}
			}

			tier, err := paramstore.ParseTier(tierName)
			if err != nil {
				return eserrors.UserError{
					Message:    err.Error(),
					Suggestion: "Use --tier standard or --tier advanced",
				}
			}

			value, err := readValue(cmd.InOrStdin(), args, fromStdin, typ)
			if err != nil {
				return err
			}

			st, backendType, err := buildStore(cfg, backendName)
			if err != nil {
				return err
			}

			param, err := st.Update(context.Background(), path, value, typ, paramstore.PutOptions{
				Description: description,
				KMSKeyID:    kmsKeyID,
				Tier:        tier,
			})
			if err != nil {
				return eserrors.StoreError(backendType, "update", err)
			}

			if jsonOutput {
				return printParameterJSON(cmd.OutOrStdout(), param, false)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (type: %s, version: %d)\n", param.Path, param.Type, param.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "", "Backend name from the config file")
	cmd.Flags().StringVar(&typeName, "type", "text", "Parameter type: text, secret, or list")
	cmd.Flags().StringVar(&description, "description", "", "Description stored with the parameter")
	cmd.Flags().StringVar(&kmsKeyID, "kms-key", "", "KMS key ID for secret parameters")
	cmd.Flags().StringVar(&tierName, "tier", "", "Storage tier: standard or advanced")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the value from stdin")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the updated parameter as JSON")

	return cmd
}
