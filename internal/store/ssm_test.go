package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/internal/store"
	"github.com/systmms/envstore/pkg/paramstore"
	"github.com/systmms/envstore/tests/fakes"
)

func newSSMStore(t *testing.T, cfg store.SSMConfig) (*store.SSMStore, *fakes.FakeSSMClient) {
	t.Helper()
	client := fakes.NewFakeSSMClient()
	s, err := store.NewSSMStore("test-ssm", cfg, store.WithSSMClient(client))
	require.NoError(t, err)
	return s, client
}

func TestSSMStoreName(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	assert.Equal(t, "test-ssm", s.Name())
}

func TestSSMPutThenGet(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	created, err := s.Put(ctx, "/app/db/user", "admin", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/app/db/user", created.Path)
	assert.Equal(t, "admin", created.Value)
	assert.Equal(t, int64(1), created.Version)

	got, err := s.Get(ctx, "/app/db/user")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Value)
	assert.Equal(t, paramstore.TypeText, got.Type)
	assert.Equal(t, int64(1), got.Version)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSSMPutWithoutOverwriteKeepsExistingValue(t *testing.T) {
	t.Parallel()

	s, client := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	_, err := s.Put(ctx, "/app/flag", "v1", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)

	_, err = s.Put(ctx, "/app/flag", "v2", paramstore.TypeText, paramstore.PutOptions{})
	var exists paramstore.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "/app/flag", exists.Path)

	// The stored value is untouched.
	got, err := s.Get(ctx, "/app/flag")
	require.NoError(t, err)
	assert.Equal(t, "v1", got.Value)
	assert.Len(t, client.Parameters, 1)
}

func TestSSMPutOverwriteIncrementsVersion(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	_, err := s.Put(ctx, "/app/db/password", "one", paramstore.TypeSecret, paramstore.PutOptions{})
	require.NoError(t, err)

	updated, err := s.Put(ctx, "/app/db/password", "two", paramstore.TypeSecret, paramstore.PutOptions{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	got, err := s.Get(ctx, "/app/db/password")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Value)
	assert.Equal(t, paramstore.TypeSecret, got.Type)
}

func TestSSMGetNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})

	_, err := s.Get(context.Background(), "/app/missing")
	var notFound paramstore.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/app/missing", notFound.Path)
}

func TestSSMDelete(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	_, err := s.Put(ctx, "/app/tmp", "x", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "/app/tmp"))

	_, err = s.Get(ctx, "/app/tmp")
	var notFound paramstore.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// Deleting again reports NotFound.
	err = s.Delete(ctx, "/app/tmp")
	assert.ErrorAs(t, err, &notFound)
}

func TestSSMList(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	for path, value := range map[string]string{
		"/app/db/user":     "admin",
		"/app/db/password": "hunter2",
		"/app/api/key":     "k",
		"/other/thing":     "x",
	} {
		_, err := s.Put(ctx, path, value, paramstore.TypeText, paramstore.PutOptions{})
		require.NoError(t, err)
	}

	params, err := s.List(ctx, "/app/db")
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "/app/db/password", params[0].Path)
	assert.Equal(t, "/app/db/user", params[1].Path)

	params, err = s.List(ctx, "/app")
	require.NoError(t, err)
	assert.Len(t, params, 3)
}

func TestSSMListEmptyPrefixYieldsEmptySlice(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})

	params, err := s.List(context.Background(), "/nothing/here")
	require.NoError(t, err)
	assert.NotNil(t, params)
	assert.Empty(t, params)
}

func TestSSMUpdateMissingCreatesNothing(t *testing.T) {
	t.Parallel()

	s, client := newSSMStore(t, store.SSMConfig{})

	_, err := s.Update(context.Background(), "/app/missing", "v", paramstore.TypeText, paramstore.PutOptions{})
	var notFound paramstore.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, client.Parameters)
}

func TestSSMUpdateExisting(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	_, err := s.Put(ctx, "/app/db/url", "old", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)

	updated, err := s.Update(ctx, "/app/db/url", "new", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "new", updated.Value)
}

func TestSSMGroupPrefix(t *testing.T) {
	t.Parallel()

	s, client := newSSMStore(t, store.SSMConfig{Group: "/myproject/staging"})
	ctx := context.Background()

	_, err := s.Put(ctx, "/db/password", "pw", paramstore.TypeSecret, paramstore.PutOptions{})
	require.NoError(t, err)

	// Stored under the full group path remotely.
	_, stored := client.Parameters["/myproject/staging/db/password"]
	assert.True(t, stored)

	// Callers keep seeing group-relative paths.
	got, err := s.Get(ctx, "/db/password")
	require.NoError(t, err)
	assert.Equal(t, "/db/password", got.Path)

	params, err := s.List(ctx, "/db")
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "/db/password", params[0].Path)
}

func TestSSMRelativePathsAreMadeAbsolute(t *testing.T) {
	t.Parallel()

	s, client := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	created, err := s.Put(ctx, "app/db/user", "admin", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/app/db/user", created.Path)

	_, stored := client.Parameters["/app/db/user"]
	assert.True(t, stored)
}

func TestSSMInvalidPathRejectedBeforeRemoteCall(t *testing.T) {
	t.Parallel()

	s, client := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	_, err := s.Put(ctx, "/app/bad value", "x", paramstore.TypeText, paramstore.PutOptions{})
	var invalid paramstore.InvalidPathError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, client.Parameters)

	_, err = s.Get(ctx, "")
	assert.ErrorAs(t, err, &invalid)
}

func TestSSMValueSizeLimit(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	big := make([]byte, 4*1024+1)
	for i := range big {
		big[i] = 'x'
	}

	_, err := s.Put(ctx, "/app/big", string(big), paramstore.TypeText, paramstore.PutOptions{})
	assert.Error(t, err)

	// The advanced tier accepts it.
	_, err = s.Put(ctx, "/app/big", string(big), paramstore.TypeText, paramstore.PutOptions{Tier: paramstore.TierAdvanced})
	assert.NoError(t, err)
}

func TestSSMListParameterRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	ctx := context.Background()

	_, err := s.Put(ctx, "/app/hosts", "a.example.com,b.example.com", paramstore.TypeList, paramstore.PutOptions{})
	require.NoError(t, err)

	got, err := s.Get(ctx, "/app/hosts")
	require.NoError(t, err)
	assert.Equal(t, paramstore.TypeList, got.Type)
	assert.Equal(t, "a.example.com,b.example.com", got.Value)
}

func TestSSMValidate(t *testing.T) {
	t.Parallel()

	s, _ := newSSMStore(t, store.SSMConfig{})
	assert.NoError(t, s.Validate(context.Background()))
}
