package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/envstore/internal/config"
)

const exampleConfig = `version: 1

# The backend used when --backend is not given.
default_backend: ssm

# Named backends. All fields besides type are backend-specific.
backends:
  ssm:
    type: aws.ssm
    region: us-east-1
    # profile: default        # optional AWS shared-config profile
    # assume_role: arn:aws:iam::123456789012:role/param-admin
    # group: /myapp           # prefix joined onto every path
    # kms_key_id: alias/myapp # encryption key for secret parameters

  # secrets:
  #   type: aws.secretsmanager
  #   region: us-east-1
  #   force_delete: false     # true skips the recovery window on delete

  # LocalStack for local development:
  # local:
  #   type: aws.ssm
  #   region: us-east-1
  #   endpoint: http://localhost:4566
  #   access_key_id: test
  #   secret_access_key: test
`

func NewInitCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new envstore configuration",
		Long:  "Create an envstore.yaml file with example backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(cfg.Path); err == nil {
				return fmt.Errorf("%s already exists. Remove it first if you want to reinitialize", cfg.Path)
			}

			if err := os.WriteFile(cfg.Path, []byte(exampleConfig), 0644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cfg.Logger.Info("Created %s with an example backend", cfg.Path)
			cfg.Logger.Info("Next steps:")
			cfg.Logger.Info("  1. Edit %s to configure your backends", cfg.Path)
			cfg.Logger.Info("  2. Run 'envstore doctor' to verify backend connectivity")
			cfg.Logger.Info("  3. Run 'envstore put /myapp/dev/greeting hello' to store a first parameter")

			return nil
		},
	}

	return cmd
}
