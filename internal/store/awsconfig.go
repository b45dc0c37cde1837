package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ClientConfig holds the AWS connection settings shared by both backends.
type ClientConfig struct {
	// Region is the AWS region. Empty falls back to the SDK default chain.
	Region string

	// Profile selects a shared config profile.
	Profile string

	// AssumeRole is an optional role ARN assumed via STS before any call.
	AssumeRole string

	// Endpoint overrides the service endpoint, for LocalStack-style
	// testing.
	Endpoint string

	// AccessKeyID and SecretAccessKey set static credentials, also for
	// LocalStack-style testing. Leave empty to use the default chain.
	AccessKeyID     string
	SecretAccessKey string
}

// loadAWSConfig resolves an aws.Config from explicit settings. Credentials
// come from the SDK default chain unless static credentials or an assume
// role are configured.
func loadAWSConfig(ctx context.Context, cc ClientConfig) (aws.Config, error) {
	var configOpts []func(*awsconfig.LoadOptions) error

	if cc.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(cc.Region))
	}
	if cc.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(cc.Profile))
	}
	if cc.AccessKeyID != "" && cc.SecretAccessKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKeyID, cc.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cc.AssumeRole != "" {
		stsClient := sts.NewFromConfig(cfg)
		cfg.Credentials = aws.NewCredentialsCache(
			stscreds.NewAssumeRoleProvider(stsClient, cc.AssumeRole),
		)
	}

	return cfg, nil
}
