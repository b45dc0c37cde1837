package secure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/internal/secure"
)

func TestBufferRoundTrip(t *testing.T) {
	buf := secure.NewBuffer([]byte("db-password-123"))
	defer buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Equal(t, "db-password-123", string(locked.Bytes()))
}

func TestBufferOpenTwice(t *testing.T) {
	buf := secure.NewBuffer([]byte("value"))
	defer buf.Destroy()

	for i := 0; i < 2; i++ {
		locked, err := buf.Open()
		require.NoError(t, err)
		assert.Equal(t, "value", string(locked.Bytes()))
		locked.Destroy()
	}
}

func TestBufferDestroyIsIdempotent(t *testing.T) {
	buf := secure.NewBuffer([]byte("value"))
	buf.Destroy()
	buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()
	assert.Empty(t, locked.Bytes())
}
