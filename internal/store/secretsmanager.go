package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/systmms/envstore/internal/logging"
	"github.com/systmms/envstore/internal/metrics"
	"github.com/systmms/envstore/internal/validation"
	"github.com/systmms/envstore/pkg/paramstore"
)

// SecretsManagerClientAPI defines the interface for AWS Secrets Manager operations
// This allows for mocking in tests
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	UpdateSecret(ctx context.Context, params *secretsmanager.UpdateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.UpdateSecretOutput, error)
}

// SecretsConfig holds the AWS Secrets Manager backend configuration.
type SecretsConfig struct {
	ClientConfig

	// ForceDelete skips the recovery window so deletes are immediate.
	ForceDelete bool
}

// SecretsStore implements paramstore.Store for AWS Secrets Manager.
//
// Secrets Manager names are flat but may contain slashes, so hierarchical
// paths map onto them directly. Versions are UUID-stamped rather than
// numbered; the numeric Version field of returned parameters stays zero.
type SecretsStore struct {
	name        string
	client      SecretsManagerClientAPI
	logger      *logging.Logger
	metrics     *metrics.Recorder
	forceDelete bool
}

// SecretsOption is a functional option for configuring the backend
type SecretsOption func(*SecretsStore)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing)
func WithSecretsManagerClient(client SecretsManagerClientAPI) SecretsOption {
	return func(s *SecretsStore) {
		s.client = client
	}
}

// WithSecretsLogger sets the logger used by the backend.
func WithSecretsLogger(logger *logging.Logger) SecretsOption {
	return func(s *SecretsStore) {
		s.logger = logger
	}
}

// NewSecretsStore creates a Secrets Manager backend from explicit configuration.
func NewSecretsStore(name string, cfg SecretsConfig, opts ...SecretsOption) (*SecretsStore, error) {
	s := &SecretsStore{
		name:        name,
		logger:      logging.New(false, false),
		metrics:     metrics.NewRecorder("aws.secretsmanager"),
		forceDelete: cfg.ForceDelete,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		awsCfg, err := loadAWSConfig(context.Background(), cfg.ClientConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create Secrets Manager client: %w", err)
		}
		var clientOpts []func(*secretsmanager.Options)
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = &endpoint
			})
		}
		s.client = secretsmanager.NewFromConfig(awsCfg, clientOpts...)
	}

	return s, nil
}

// Name returns the backend name
func (s *SecretsStore) Name() string {
	return s.name
}

// Put creates a secret, or writes a new version when opts.Overwrite is set.
func (s *SecretsStore) Put(ctx context.Context, path, value string, typ paramstore.Type, opts paramstore.PutOptions) (param paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("put", start, err) }()

	cleaned, err := prepareSecretName(path)
	if err != nil {
		return paramstore.Parameter{}, err
	}
	if err = validation.ValidateValue(value, opts.Tier); err != nil {
		return paramstore.Parameter{}, err
	}

	if opts.Overwrite {
		_, putErr := s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
			SecretId:     aws.String(cleaned),
			SecretString: aws.String(value),
		})
		if putErr == nil {
			return paramstore.Parameter{Path: cleaned, Value: value, Type: paramstore.TypeSecret}, nil
		}
		translated := translateSecretsError(putErr, cleaned, "put")
		var notFound paramstore.NotFoundError
		if !errors.As(translated, &notFound) {
			err = translated
			return paramstore.Parameter{}, err
		}
		// Fall through and create the secret.
	}

	input := &secretsmanager.CreateSecretInput{
		Name:         aws.String(cleaned),
		SecretString: aws.String(value),
	}
	if opts.Description != "" {
		input.Description = aws.String(opts.Description)
	}
	if opts.KMSKeyID != "" {
		input.KmsKeyId = aws.String(opts.KMSKeyID)
	}
	if len(opts.Tags) > 0 {
		input.Tags = toSecretsTags(opts.Tags)
	}

	if _, createErr := s.client.CreateSecret(ctx, input); createErr != nil {
		err = translateSecretsError(createErr, cleaned, "put")
		return paramstore.Parameter{}, err
	}

	return paramstore.Parameter{Path: cleaned, Value: value, Type: paramstore.TypeSecret}, nil
}

// Get returns the current version of the secret at the exact path.
func (s *SecretsStore) Get(ctx context.Context, path string) (param paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("get", start, err) }()

	cleaned, err := prepareSecretName(path)
	if err != nil {
		return paramstore.Parameter{}, err
	}

	s.logger.Debug("Fetching secret %s", logging.Secret(cleaned))

	out, getErr := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cleaned),
	})
	if getErr != nil {
		err = translateSecretsError(getErr, cleaned, "get")
		return paramstore.Parameter{}, err
	}

	param = paramstore.Parameter{
		Path:  cleaned,
		Value: aws.ToString(out.SecretString),
		Type:  paramstore.TypeSecret,
		ARN:   aws.ToString(out.ARN),
	}
	if out.CreatedDate != nil {
		param.UpdatedAt = *out.CreatedDate
	}
	return param, nil
}

// List returns every secret whose name starts with prefix. One value fetch
// per matching secret; callers with large trees should prefer the SSM
// backend for listing-heavy workloads.
func (s *SecretsStore) List(ctx context.Context, prefix string) (params []paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("list", start, err) }()

	cleaned, err := prepareSecretName(prefix)
	if err != nil {
		return nil, err
	}

	params = []paramstore.Parameter{}
	var nextToken *string
	for {
		page, listErr := s.client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
			NextToken: nextToken,
			Filters: []smtypes.Filter{
				{Key: smtypes.FilterNameStringTypeName, Values: []string{cleaned}},
			},
		})
		if listErr != nil {
			err = translateSecretsError(listErr, cleaned, "list")
			return nil, err
		}

		for _, entry := range page.SecretList {
			name := aws.ToString(entry.Name)
			if !underPrefix(name, cleaned) {
				continue
			}
			value, getErr := s.Get(ctx, name)
			if getErr != nil {
				err = getErr
				return nil, err
			}
			params = append(params, value)
		}

		if page.NextToken == nil {
			break
		}
		nextToken = page.NextToken
	}

	sort.Slice(params, func(i, j int) bool { return params[i].Path < params[j].Path })
	return params, nil
}

// Delete removes the secret. With ForceDelete the recovery window is
// skipped and the secret and all versions are gone immediately.
func (s *SecretsStore) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("delete", start, err) }()

	cleaned, err := prepareSecretName(path)
	if err != nil {
		return err
	}

	// DeleteSecret succeeds on scheduled-for-deletion secrets; probe first
	// so deleting an absent path reports NotFound.
	if _, getErr := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cleaned),
	}); getErr != nil {
		err = translateSecretsError(getErr, cleaned, "delete")
		return err
	}

	input := &secretsmanager.DeleteSecretInput{
		SecretId: aws.String(cleaned),
	}
	if s.forceDelete {
		input.ForceDeleteWithoutRecovery = aws.Bool(true)
	}
	if _, delErr := s.client.DeleteSecret(ctx, input); delErr != nil {
		err = translateSecretsError(delErr, cleaned, "delete")
		return err
	}
	return nil
}

// Update writes a new version of an existing secret, never creating one.
// PutSecretValue cannot change description or KMS key, so updates that set
// either go through UpdateSecret instead.
func (s *SecretsStore) Update(ctx context.Context, path, value string, typ paramstore.Type, opts paramstore.PutOptions) (param paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("update", start, err) }()

	cleaned, err := prepareSecretName(path)
	if err != nil {
		return paramstore.Parameter{}, err
	}
	if err = validation.ValidateValue(value, opts.Tier); err != nil {
		return paramstore.Parameter{}, err
	}

	if opts.Description != "" || opts.KMSKeyID != "" {
		input := &secretsmanager.UpdateSecretInput{
			SecretId:     aws.String(cleaned),
			SecretString: aws.String(value),
		}
		if opts.Description != "" {
			input.Description = aws.String(opts.Description)
		}
		if opts.KMSKeyID != "" {
			input.KmsKeyId = aws.String(opts.KMSKeyID)
		}
		if _, updateErr := s.client.UpdateSecret(ctx, input); updateErr != nil {
			err = translateSecretsError(updateErr, cleaned, "update")
			return paramstore.Parameter{}, err
		}
		return paramstore.Parameter{Path: cleaned, Value: value, Type: paramstore.TypeSecret}, nil
	}

	_, putErr := s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(cleaned),
		SecretString: aws.String(value),
	})
	if putErr != nil {
		err = translateSecretsError(putErr, cleaned, "update")
		return paramstore.Parameter{}, err
	}
	return paramstore.Parameter{Path: cleaned, Value: value, Type: paramstore.TypeSecret}, nil
}

// Validate checks connectivity with a minimal list call.
func (s *SecretsStore) Validate(ctx context.Context) error {
	_, err := s.client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return translateSecretsError(err, "", "validate")
	}
	return nil
}


// prepareSecretName validates a secret name. Unlike SSM paths, Secrets
// Manager names are flat (slashes are allowed but carry no hierarchy), so
// the name is kept verbatim and only checked for legal characters.
func prepareSecretName(path string) (string, error) {
	if err := validation.ValidatePath(path); err != nil {
		return "", err
	}
	return path, nil
}

// underPrefix reports whether name equals prefix or sits beneath it in the
// hierarchy, so /app does not match /application.
func underPrefix(name, prefix string) bool {
	if name == prefix {
		return true
	}
	return strings.HasPrefix(name, strings.TrimRight(prefix, "/")+"/")
}

func toSecretsTags(tags map[string]string) []smtypes.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]smtypes.Tag, 0, len(tags))
	for _, k := range keys {
		out = append(out, smtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
