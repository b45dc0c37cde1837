package fakes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// FakeSSMClient is a map-backed implementation of the SSM client interface
// used by the aws.ssm backend.
type FakeSSMClient struct {
	mu sync.Mutex

	// Parameters maps parameter names to their data
	Parameters map[string]*ParameterData
	// Errors maps parameter names to errors to return
	Errors map[string]error

	// GetParameterFunc allows custom behavior for GetParameter
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
	// PutParameterFunc allows custom behavior for PutParameter
	PutParameterFunc func(ctx context.Context, params *ssm.PutParameterInput) (*ssm.PutParameterOutput, error)
	// DeleteParameterFunc allows custom behavior for DeleteParameter
	DeleteParameterFunc func(ctx context.Context, params *ssm.DeleteParameterInput) (*ssm.DeleteParameterOutput, error)
	// GetParametersByPathFunc allows custom behavior for GetParametersByPath
	GetParametersByPathFunc func(ctx context.Context, params *ssm.GetParametersByPathInput) (*ssm.GetParametersByPathOutput, error)
	// DescribeParametersFunc allows custom behavior for DescribeParameters
	DescribeParametersFunc func(ctx context.Context, params *ssm.DescribeParametersInput) (*ssm.DescribeParametersOutput, error)
}

// ParameterData holds the data for a fake SSM parameter
type ParameterData struct {
	Name             *string
	Type             ssmtypes.ParameterType
	Value            *string
	Version          int64
	LastModifiedDate *time.Time
	ARN              *string
	DataType         *string
	Tier             ssmtypes.ParameterTier
	Description      *string
	KeyID            *string
	Tags             []ssmtypes.Tag
}

// NewFakeSSMClient creates a new fake SSM client
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
	}
}

// AddStringParameter seeds a String parameter
func (f *FakeSSMClient) AddStringParameter(name, value string) {
	f.addParameter(name, value, ssmtypes.ParameterTypeString)
}

// AddSecureStringParameter seeds a SecureString parameter
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	f.addParameter(name, value, ssmtypes.ParameterTypeSecureString)
}

// AddStringListParameter seeds a StringList parameter
func (f *FakeSSMClient) AddStringListParameter(name, value string) {
	f.addParameter(name, value, ssmtypes.ParameterTypeStringList)
}

func (f *FakeSSMClient) addParameter(name, value string, typ ssmtypes.ParameterType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	f.Parameters[name] = &ParameterData{
		Name:             aws.String(name),
		Type:             typ,
		Value:            aws.String(value),
		Version:          1,
		LastModifiedDate: &now,
		ARN:              aws.String(fmt.Sprintf("arn:aws:ssm:us-east-1:123456789012:parameter%s", name)),
		Tier:             ssmtypes.ParameterTierStandard,
	}
}

// AddError configures the fake to fail for a specific parameter name
func (f *FakeSSMClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

// GetParameter implements the SSM client interface
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if f.GetParameterFunc != nil {
		return f.GetParameterFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	data, exists := f.Parameters[name]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", name)),
		}
	}

	return &ssm.GetParameterOutput{Parameter: data.toParameter()}, nil
}

// PutParameter implements the SSM client interface
func (f *FakeSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	if f.PutParameterFunc != nil {
		return f.PutParameterFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	existing, exists := f.Parameters[name]
	if exists && !aws.ToBool(params.Overwrite) {
		return nil, &ssmtypes.ParameterAlreadyExists{
			Message: aws.String(fmt.Sprintf("Parameter %s already exists", name)),
		}
	}

	version := int64(1)
	if exists {
		version = existing.Version + 1
	}

	now := time.Now()
	f.Parameters[name] = &ParameterData{
		Name:             aws.String(name),
		Type:             params.Type,
		Value:            params.Value,
		Version:          version,
		LastModifiedDate: &now,
		ARN:              aws.String(fmt.Sprintf("arn:aws:ssm:us-east-1:123456789012:parameter%s", name)),
		Tier:             params.Tier,
		Description:      params.Description,
		KeyID:            params.KeyId,
		Tags:             params.Tags,
	}

	return &ssm.PutParameterOutput{Version: version, Tier: params.Tier}, nil
}

// DeleteParameter implements the SSM client interface
func (f *FakeSSMClient) DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
	if f.DeleteParameterFunc != nil {
		return f.DeleteParameterFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	if _, exists := f.Parameters[name]; !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", name)),
		}
	}

	delete(f.Parameters, name)
	return &ssm.DeleteParameterOutput{}, nil
}

// GetParametersByPath implements the SSM client interface. The fake returns
// everything in a single page.
func (f *FakeSSMClient) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.GetParametersByPathFunc != nil {
		return f.GetParametersByPathFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := aws.ToString(params.Path)
	if err, exists := f.Errors[path]; exists {
		return nil, err
	}

	prefix := strings.TrimRight(path, "/") + "/"
	recursive := aws.ToBool(params.Recursive)

	var out []ssmtypes.Parameter
	for name, data := range f.Parameters {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !recursive && strings.Contains(strings.TrimPrefix(name, prefix), "/") {
			continue
		}
		out = append(out, *data.toParameter())
	}

	return &ssm.GetParametersByPathOutput{Parameters: out}, nil
}

// DescribeParameters implements the SSM client interface
func (f *FakeSSMClient) DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
	if f.DescribeParametersFunc != nil {
		return f.DescribeParametersFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var metadata []ssmtypes.ParameterMetadata
	for _, data := range f.Parameters {
		metadata = append(metadata, ssmtypes.ParameterMetadata{
			Name:             data.Name,
			Type:             data.Type,
			Version:          data.Version,
			LastModifiedDate: data.LastModifiedDate,
			Tier:             data.Tier,
		})
	}
	return &ssm.DescribeParametersOutput{Parameters: metadata}, nil
}

func (d *ParameterData) toParameter() *ssmtypes.Parameter {
	return &ssmtypes.Parameter{
		Name:             d.Name,
		Type:             d.Type,
		Value:            d.Value,
		Version:          d.Version,
		LastModifiedDate: d.LastModifiedDate,
		ARN:              d.ARN,
		DataType:         d.DataType,
	}
}

// FakeSecretsManagerClient is a map-backed implementation of the Secrets
// Manager client interface used by the aws.secretsmanager backend.
type FakeSecretsManagerClient struct {
	mu sync.Mutex

	// Secrets maps secret names to their data
	Secrets map[string]*SecretData
	// Errors maps secret names to errors to return
	Errors map[string]error

	// GetSecretValueFunc allows custom behavior for GetSecretValue
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
	// CreateSecretFunc allows custom behavior for CreateSecret
	CreateSecretFunc func(ctx context.Context, params *secretsmanager.CreateSecretInput) (*secretsmanager.CreateSecretOutput, error)
	// PutSecretValueFunc allows custom behavior for PutSecretValue
	PutSecretValueFunc func(ctx context.Context, params *secretsmanager.PutSecretValueInput) (*secretsmanager.PutSecretValueOutput, error)
	// DeleteSecretFunc allows custom behavior for DeleteSecret
	DeleteSecretFunc func(ctx context.Context, params *secretsmanager.DeleteSecretInput) (*secretsmanager.DeleteSecretOutput, error)
	// ListSecretsFunc allows custom behavior for ListSecrets
	ListSecretsFunc func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error)
	// UpdateSecretFunc allows custom behavior for UpdateSecret
	UpdateSecretFunc func(ctx context.Context, params *secretsmanager.UpdateSecretInput) (*secretsmanager.UpdateSecretOutput, error)
}

// SecretData holds the data for a fake secret
type SecretData struct {
	Value       *string
	ARN         *string
	CreatedDate *time.Time
	Description *string
	KmsKeyID    *string
	Deleted     bool
}

// NewFakeSecretsManagerClient creates a new fake Secrets Manager client
func NewFakeSecretsManagerClient() *FakeSecretsManagerClient {
	return &FakeSecretsManagerClient{
		Secrets: make(map[string]*SecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecretString seeds a secret
func (f *FakeSecretsManagerClient) AddSecretString(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	f.Secrets[name] = &SecretData{
		Value:       aws.String(value),
		ARN:         aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", name)),
		CreatedDate: &now,
	}
}

// AddError configures the fake to fail for a specific secret name
func (f *FakeSecretsManagerClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

// GetSecretValue implements the Secrets Manager client interface
func (f *FakeSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if f.GetSecretValueFunc != nil {
		return f.GetSecretValueFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.SecretId)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	data, exists := f.Secrets[name]
	if !exists || data.Deleted {
		return nil, &smtypes.ResourceNotFoundException{
			Message: aws.String("Secrets Manager can't find the specified secret."),
		}
	}

	return &secretsmanager.GetSecretValueOutput{
		Name:         aws.String(name),
		ARN:          data.ARN,
		SecretString: data.Value,
		CreatedDate:  data.CreatedDate,
	}, nil
}

// CreateSecret implements the Secrets Manager client interface
func (f *FakeSecretsManagerClient) CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	if f.CreateSecretFunc != nil {
		return f.CreateSecretFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	if data, exists := f.Secrets[name]; exists && !data.Deleted {
		return nil, &smtypes.ResourceExistsException{
			Message: aws.String(fmt.Sprintf("The secret %s already exists.", name)),
		}
	}

	now := time.Now()
	f.Secrets[name] = &SecretData{
		Value:       params.SecretString,
		ARN:         aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", name)),
		CreatedDate: &now,
		Description: params.Description,
		KmsKeyID:    params.KmsKeyId,
	}

	return &secretsmanager.CreateSecretOutput{
		Name: aws.String(name),
		ARN:  f.Secrets[name].ARN,
	}, nil
}

// PutSecretValue implements the Secrets Manager client interface
func (f *FakeSecretsManagerClient) PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	if f.PutSecretValueFunc != nil {
		return f.PutSecretValueFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.SecretId)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	data, exists := f.Secrets[name]
	if !exists || data.Deleted {
		return nil, &smtypes.ResourceNotFoundException{
			Message: aws.String("Secrets Manager can't find the specified secret."),
		}
	}

	now := time.Now()
	data.Value = params.SecretString
	data.CreatedDate = &now

	return &secretsmanager.PutSecretValueOutput{
		Name: aws.String(name),
		ARN:  data.ARN,
	}, nil
}

// UpdateSecret implements the Secrets Manager client interface
func (f *FakeSecretsManagerClient) UpdateSecret(ctx context.Context, params *secretsmanager.UpdateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.UpdateSecretOutput, error) {
	if f.UpdateSecretFunc != nil {
		return f.UpdateSecretFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.SecretId)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	data, exists := f.Secrets[name]
	if !exists || data.Deleted {
		return nil, &smtypes.ResourceNotFoundException{
			Message: aws.String("Secrets Manager can't find the specified secret."),
		}
	}

	now := time.Now()
	if params.SecretString != nil {
		data.Value = params.SecretString
	}
	if params.Description != nil {
		data.Description = params.Description
	}
	if params.KmsKeyId != nil {
		data.KmsKeyID = params.KmsKeyId
	}
	data.CreatedDate = &now

	return &secretsmanager.UpdateSecretOutput{
		Name: aws.String(name),
		ARN:  data.ARN,
	}, nil
}

// DeleteSecret implements the Secrets Manager client interface
func (f *FakeSecretsManagerClient) DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error) {
	if f.DeleteSecretFunc != nil {
		return f.DeleteSecretFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.SecretId)
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	data, exists := f.Secrets[name]
	if !exists {
		return nil, &smtypes.ResourceNotFoundException{
			Message: aws.String("Secrets Manager can't find the specified secret."),
		}
	}

	if aws.ToBool(params.ForceDeleteWithoutRecovery) {
		delete(f.Secrets, name)
	} else {
		data.Deleted = true
	}

	return &secretsmanager.DeleteSecretOutput{Name: aws.String(name)}, nil
}

// ListSecrets implements the Secrets Manager client interface. The fake
// applies name filters and returns everything in a single page.
func (f *FakeSecretsManagerClient) ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	if f.ListSecretsFunc != nil {
		return f.ListSecretsFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []smtypes.SecretListEntry
	for name, data := range f.Secrets {
		if data.Deleted {
			continue
		}
		if !matchesFilters(name, params.Filters) {
			continue
		}
		entries = append(entries, smtypes.SecretListEntry{
			Name:        aws.String(name),
			ARN:         data.ARN,
			CreatedDate: data.CreatedDate,
		})
	}
	return &secretsmanager.ListSecretsOutput{SecretList: entries}, nil
}

func matchesFilters(name string, filters []smtypes.Filter) bool {
	for _, filter := range filters {
		if filter.Key != smtypes.FilterNameStringTypeName {
			continue
		}
		matched := false
		for _, v := range filter.Values {
			if strings.HasPrefix(name, v) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
