package paramstore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/pkg/paramstore"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected paramstore.Type
		wantErr  bool
	}{
		{input: "text", expected: paramstore.TypeText},
		{input: "secret", expected: paramstore.TypeSecret},
		{input: "list", expected: paramstore.TypeList},
		{input: "", wantErr: true},
		{input: "String", wantErr: true},
		{input: "SecureString", wantErr: true},
		{input: "TEXT", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, err := paramstore.ParseType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown parameter type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typ)
		})
	}
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	tier, err := paramstore.ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, paramstore.TierStandard, tier)

	tier, err = paramstore.ParseTier("advanced")
	require.NoError(t, err)
	assert.Equal(t, paramstore.TierAdvanced, tier)

	_, err = paramstore.ParseTier("premium")
	assert.Error(t, err)
}

func TestTypedErrorsWorkWithErrorsAs(t *testing.T) {
	t.Parallel()

	var wrapped error = assertWrap(paramstore.NotFoundError{Path: "/app/db/password"})
	var notFound paramstore.NotFoundError
	require.True(t, errors.As(wrapped, &notFound))
	assert.Equal(t, "/app/db/password", notFound.Path)

	wrapped = assertWrap(paramstore.AlreadyExistsError{Path: "/app/flag"})
	var exists paramstore.AlreadyExistsError
	require.True(t, errors.As(wrapped, &exists))
	assert.Contains(t, exists.Error(), "already exists")

	wrapped = assertWrap(paramstore.ThrottledError{Operation: "list"})
	var throttled paramstore.ThrottledError
	require.True(t, errors.As(wrapped, &throttled))
	assert.Equal(t, "list", throttled.Operation)
}

func TestAccessDeniedErrorMessages(t *testing.T) {
	t.Parallel()

	err := paramstore.AccessDeniedError{Operation: "validate"}
	assert.Equal(t, "access denied during validate", err.Error())

	err = paramstore.AccessDeniedError{Path: "/app/db/user", Operation: "put"}
	assert.Contains(t, err.Error(), `"/app/db/user"`)
}

func TestInvalidPathErrorMessage(t *testing.T) {
	t.Parallel()

	err := paramstore.InvalidPathError{Path: "app db", Reason: "illegal characters"}
	assert.Contains(t, err.Error(), "app db")
	assert.Contains(t, err.Error(), "illegal characters")
}

func assertWrap(err error) error {
	return errors.Join(errors.New("operation failed"), err)
}
