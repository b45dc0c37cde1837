package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
	eserrors "github.com/systmms/envstore/internal/errors"
	"github.com/systmms/envstore/internal/secure"
	"github.com/systmms/envstore/pkg/paramstore"
)

func NewPutCommand(cfg *config.Config) *cobra.Command {
	var (
		backendName string
		typeName    string
		overwrite   bool
		description string
		kmsKeyID    string
		tierName    string
		tags        []string
		fromStdin   bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "put <path> [value]",
		Short: "Create a parameter",
		Long: `Create a parameter at the given path.

By default put refuses to replace an existing parameter; pass --overwrite to
replace the value and bump the version. Secret values should be piped in via
--stdin so they never appear in shell history.

Examples:
  # Store a plain text value
  envstore put /app/prod/db/host db.example.com

  # Store a secret read from stdin
  echo -n "s3cret" | envstore put /app/prod/db/password --type secret --stdin

  # Store a list value
  envstore put /app/prod/db/replicas "db1,db2,db3" --type list

  # Replace an existing value
  envstore put /app/prod/db/host db2.example.com --overwrite`,
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

			tagMap, err := parseTags(tags)
			if err != nil {
				return eserrors.UserError{
					Message:    err.Error(),
					Suggestion: "Pass tags as --tag team=platform --tag env=prod",
				}
			}
			if len(tagMap) > 0 && overwrite {
				return eserrors.UserError{
					Message:    "Tags cannot be combined with --overwrite",
					Suggestion: "Create the parameter with tags first, then overwrite the value separately",
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

			param, err := st.Put(context.Background(), path, value, typ, paramstore.PutOptions{
				Overwrite:   overwrite,
				Description: description,
				KMSKeyID:    kmsKeyID,
				Tier:        tier,
				Tags:        tagMap,
			})
			if err != nil {
				return eserrors.StoreError(backendType, "put", err)
			}

			if jsonOutput {
				return printParameterJSON(cmd.OutOrStdout(), param, false)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (type: %s, version: %d)\n", param.Path, param.Type, param.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "", "Backend name from the config file")
	cmd.Flags().StringVar(&typeName, "type", "text", "Parameter type: text, secret, or list")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing parameter")
	cmd.Flags().StringVar(&description, "description", "", "Description stored with the parameter")
	cmd.Flags().StringVar(&kmsKeyID, "kms-key", "", "KMS key ID for secret parameters")
	cmd.Flags().StringVar(&tierName, "tier", "", "Storage tier: standard or advanced")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag in key=value form (repeatable)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the value from stdin")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the stored parameter as JSON")

	return cmd
}

// readValue resolves the parameter value from the positional argument or
// stdin. Secret values read from stdin pass through protected memory so the
// plaintext copy is wiped once the value string is built.
func readValue(stdin io.Reader, args []string, fromStdin bool, typ paramstore.Type) (string, error) {
	if fromStdin {
		if len(args) > 1 {
			return "", eserrors.UserError{
				Message:    "Cannot combine a value argument with --stdin",
				Suggestion: "Pass the value either as an argument or on stdin, not both",
			}
		}
		raw, err := io.ReadAll(bufio.NewReader(stdin))
		if err != nil {
			return "", fmt.Errorf("failed to read value from stdin: %w", err)
		}
		raw = []byte(strings.TrimRight(string(raw), "\n"))
		if typ != paramstore.TypeSecret {
			return string(raw), nil
		}

		buf := secure.NewBuffer(raw)
		defer buf.Destroy()
		locked, err := buf.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open secure buffer: %w", err)
		}
		defer locked.Destroy()
		// Copies out of protected memory; the remote call needs a plain
		// string and the SDK keeps its own copies anyway.
		return string(locked.Bytes()), nil
	}

	if len(args) < 2 {
		return "", eserrors.UserError{
			Message:    "A value is required",
			Suggestion: "Pass the value as the second argument, or use --stdin",
		}
	}
	return args[1], nil
}
