package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/internal/config"
	"github.com/systmms/envstore/internal/logging"
	"github.com/systmms/envstore/internal/store"
)

func TestRegistrySupportedTypes(t *testing.T) {
	t.Parallel()

	r := store.NewRegistry(logging.New(false, true))
	assert.Equal(t, []string{"aws.secretsmanager", "aws.ssm"}, r.SupportedTypes())
}

func TestRegistryCreateUnknownType(t *testing.T) {
	t.Parallel()

	r := store.NewRegistry(logging.New(false, true))
	_, err := r.Create("bad", config.BackendConfig{Type: "azure.keyvault"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend type")
	assert.Contains(t, err.Error(), "aws.ssm")
}

func TestRegistryCreateSSM(t *testing.T) {
	t.Parallel()

	r := store.NewRegistry(logging.New(false, true))
	s, err := r.Create("main", config.BackendConfig{
		Type:   "aws.ssm",
		Region: "us-east-1",
		// Static credentials keep client construction offline.
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Group:           "/myapp",
	})
	require.NoError(t, err)
	assert.Equal(t, "main", s.Name())
}

func TestRegistryCreateSecretsManager(t *testing.T) {
	t.Parallel()

	r := store.NewRegistry(logging.New(false, true))
	s, err := r.Create("secrets", config.BackendConfig{
		Type:            "aws.secretsmanager",
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "secrets", s.Name())
}
