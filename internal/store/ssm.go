package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/systmms/envstore/internal/logging"
	"github.com/systmms/envstore/internal/metrics"
	"github.com/systmms/envstore/internal/validation"
	"github.com/systmms/envstore/pkg/paramstore"
)

// SSMClientAPI defines the interface for AWS SSM Parameter Store operations
// This allows for mocking in tests
type SSMClientAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
}

// SSMConfig holds the AWS SSM backend configuration.
type SSMConfig struct {
	ClientConfig

	// Group is an optional path prefix prepended to every parameter path
	// and stripped again from results. Useful for separating environments
	// under one tree, e.g. /myproject/production.
	Group string

	// WithDecryption controls whether secret parameters are decrypted on
	// reads. Defaults to true in NewSSMStore.
	WithDecryption *bool

	// KMSKeyID is the default encryption key for secret parameters. A
	// per-call PutOptions.KMSKeyID takes precedence.
	KMSKeyID string
}

// SSMStore implements paramstore.Store for AWS Systems Manager Parameter Store.
type SSMStore struct {
	name    string
	client  SSMClientAPI
	logger  *logging.Logger
	metrics *metrics.Recorder
	group   string
	decrypt bool
	kmsKey  string
}

// SSMOption is a functional option for configuring the SSM backend
type SSMOption func(*SSMStore)

// WithSSMClient sets a custom SSM client (for testing)
func WithSSMClient(client SSMClientAPI) SSMOption {
	return func(s *SSMStore) {
		s.client = client
	}
}

// WithSSMLogger sets the logger used by the backend.
func WithSSMLogger(logger *logging.Logger) SSMOption {
	return func(s *SSMStore) {
		s.logger = logger
	}
}

// NewSSMStore creates a Parameter Store backend from explicit configuration.
func NewSSMStore(name string, cfg SSMConfig, opts ...SSMOption) (*SSMStore, error) {
	s := &SSMStore{
		name:    name,
		logger:  logging.New(false, false),
		metrics: metrics.NewRecorder("aws.ssm"),
		decrypt: true,
		kmsKey:  cfg.KMSKeyID,
	}
	if cfg.WithDecryption != nil {
		s.decrypt = *cfg.WithDecryption
	}

	if cfg.Group != "" {
		group, err := validation.CleanAndValidatePath(cfg.Group)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(group, "/") {
			group = "/" + group
		}
		s.group = group
	}

	// Apply options (allows mock client injection)
	for _, opt := range opts {
		opt(s)
	}

	// If no client was provided via options, create the real one
	if s.client == nil {
		awsCfg, err := loadAWSConfig(context.Background(), cfg.ClientConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create SSM client: %w", err)
		}
		var clientOpts []func(*ssm.Options)
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			clientOpts = append(clientOpts, func(o *ssm.Options) {
				o.BaseEndpoint = &endpoint
			})
		}
		s.client = ssm.NewFromConfig(awsCfg, clientOpts...)
	}

	return s, nil
}

// Name returns the backend name
func (s *SSMStore) Name() string {
	return s.name
}

// Put creates a parameter, or replaces it when opts.Overwrite is set.
func (s *SSMStore) Put(ctx context.Context, path, value string, typ paramstore.Type, opts paramstore.PutOptions) (param paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("put", start, err) }()

	cleaned, err := s.preparePath(path)
	if err != nil {
		return paramstore.Parameter{}, err
	}
	if err = validation.ValidateValue(value, opts.Tier); err != nil {
		return paramstore.Parameter{}, err
	}

	ssmType, err := toSSMType(typ)
	if err != nil {
		return paramstore.Parameter{}, err
	}

	s.logger.Debug("Putting parameter %s (overwrite=%v)", s.join(cleaned), opts.Overwrite)

	input := &ssm.PutParameterInput{
		Name:      aws.String(s.join(cleaned)),
		Value:     aws.String(value),
		Type:      ssmType,
		Overwrite: aws.Bool(opts.Overwrite),
		Tier:      toSSMTier(opts.Tier),
	}
	if opts.Description != "" {
		input.Description = aws.String(opts.Description)
	}
	if key := s.putKey(opts); key != "" && ssmType == ssmtypes.ParameterTypeSecureString {
		input.KeyId = aws.String(key)
	}
	// SSM rejects Tags combined with Overwrite, so tags only apply on create.
	if len(opts.Tags) > 0 && !opts.Overwrite {
		input.Tags = toSSMTags(opts.Tags)
	}

	out, putErr := s.client.PutParameter(ctx, input)
	if putErr != nil {
		err = translateSSMError(putErr, cleaned, "put")
		return paramstore.Parameter{}, err
	}

	return paramstore.Parameter{
		Path:    cleaned,
		Value:   value,
		Type:    typ,
		Version: out.Version,
	}, nil
}

// putKey resolves the KMS key for a put, preferring the per-call option
// over the backend default.
func (s *SSMStore) putKey(opts paramstore.PutOptions) string {
	if opts.KMSKeyID != "" {
		return opts.KMSKeyID
	}
	return s.kmsKey
}

// Get returns the current version of the parameter at the exact path.
func (s *SSMStore) Get(ctx context.Context, path string) (param paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("get", start, err) }()

	cleaned, err := s.preparePath(path)
	if err != nil {
		return paramstore.Parameter{}, err
	}

	s.logger.Debug("Fetching parameter %s", s.join(cleaned))

	out, getErr := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.join(cleaned)),
		WithDecryption: aws.Bool(s.decrypt),
	})
	if getErr != nil {
		err = translateSSMError(getErr, cleaned, "get")
		return paramstore.Parameter{}, err
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		err = fmt.Errorf("parameter %q has no value", cleaned)
		return paramstore.Parameter{}, err
	}

	return s.fromSSMParameter(out.Parameter), nil
}

// List returns every parameter under prefix, following pagination. A prefix
// without matches yields an empty slice.
func (s *SSMStore) List(ctx context.Context, prefix string) (params []paramstore.Parameter, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("list", start, err) }()

	cleaned, err := s.preparePath(prefix)
	if err != nil {
		return nil, err
	}
	remote := s.join(cleaned)
	if !strings.HasPrefix(remote, "/") {
		// GetParametersByPath only accepts absolute hierarchies.
		remote = "/" + remote
	}

	s.logger.Debug("Listing parameters under %s", remote)

	params = []paramstore.Parameter{}
	paginator := ssm.NewGetParametersByPathPaginator(s.client, &ssm.GetParametersByPathInput{
		Path:           aws.String(remote),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(s.decrypt),
	})
	for paginator.HasMorePages() {
		page, pageErr := paginator.NextPage(ctx)
		if pageErr != nil {
			err = translateSSMError(pageErr, cleaned, "list")
			return nil, err
		}
		for i := range page.Parameters {
			params = append(params, s.fromSSMParameter(&page.Parameters[i]))
		}
	}

	// The service does not guarantee order; sort for stable output.
	sort.Slice(params, func(i, j int) bool { return params[i].Path < params[j].Path })
	return params, nil
}

// Delete removes the parameter and all of its versions.
func (s *SSMStore) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("delete", start, err) }()

	cleaned, err := s.preparePath(path)
	if err != nil {
		return err
	}

	s.logger.Debug("Deleting parameter %s", s.join(cleaned))

	_, delErr := s.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{
		Name: aws.String(s.join(cleaned)),
	})
	if delErr != nil {
		err = translateSSMError(delErr, cleaned, "delete")
		return err
	}
	return nil
}

// Update replaces the value of an existing parameter. It probes for
// existence first and never creates.
func (s *SSMStore) Update(ctx context.Context, path, value string, typ paramstore.Type, opts paramstore.PutOptions) (paramstore.Parameter, error) {
	if _, err := s.Get(ctx, path); err != nil {
		return paramstore.Parameter{}, err
	}

	opts.Overwrite = true
	return s.Put(ctx, path, value, typ, opts)
}

// Validate checks connectivity with a minimal-permission describe call.
func (s *SSMStore) Validate(ctx context.Context) error {
	_, err := s.client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return translateSSMError(err, "", "validate")
	}
	return nil
}

// preparePath cleans and validates a caller-supplied path.
func (s *SSMStore) preparePath(path string) (string, error) {
	return validation.CleanAndValidatePath(path)
}

// join prepends the configured group to a cleaned path.
func (s *SSMStore) join(path string) string {
	if s.group == "" {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return s.group + path
	}
	return s.group + "/" + path
}

// strip removes the configured group from a remote parameter name, so
// callers always see paths in their own namespace.
func (s *SSMStore) strip(remote string) string {
	if s.group == "" {
		return remote
	}
	stripped := strings.TrimPrefix(remote, s.group)
	if stripped == "" {
		return "/"
	}
	return stripped
}

func (s *SSMStore) fromSSMParameter(p *ssmtypes.Parameter) paramstore.Parameter {
	param := paramstore.Parameter{
		Path:    s.strip(aws.ToString(p.Name)),
		Value:   aws.ToString(p.Value),
		Type:    fromSSMType(p.Type),
		Version: p.Version,
		ARN:     aws.ToString(p.ARN),
	}
	if p.DataType != nil {
		param.DataType = *p.DataType
	}
	if p.LastModifiedDate != nil {
		param.UpdatedAt = *p.LastModifiedDate
	}
	return param
}

func toSSMType(typ paramstore.Type) (ssmtypes.ParameterType, error) {
	switch typ {
	case paramstore.TypeText:
		return ssmtypes.ParameterTypeString, nil
	case paramstore.TypeSecret:
		return ssmtypes.ParameterTypeSecureString, nil
	case paramstore.TypeList:
		return ssmtypes.ParameterTypeStringList, nil
	default:
		return "", fmt.Errorf("unknown parameter type %q", typ)
	}
}

func fromSSMType(typ ssmtypes.ParameterType) paramstore.Type {
	switch typ {
	case ssmtypes.ParameterTypeSecureString:
		return paramstore.TypeSecret
	case ssmtypes.ParameterTypeStringList:
		return paramstore.TypeList
	default:
		return paramstore.TypeText
	}
}

func toSSMTier(tier paramstore.Tier) ssmtypes.ParameterTier {
	if tier == paramstore.TierAdvanced {
		return ssmtypes.ParameterTierAdvanced
	}
	return ssmtypes.ParameterTierStandard
}

func toSSMTags(tags map[string]string) []ssmtypes.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ssmtypes.Tag, 0, len(tags))
	for _, k := range keys {
		out = append(out, ssmtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
