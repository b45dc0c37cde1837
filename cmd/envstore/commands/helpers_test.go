package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/pkg/paramstore"
)

func TestParseTags(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		tags, err := parseTags(nil)
		require.NoError(t, err)
		assert.Nil(t, tags)
	})

	t.Run("valid pairs", func(t *testing.T) {
		t.Parallel()
		tags, err := parseTags([]string{"team=platform", "env=prod", "note=a=b"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"team": "platform",
			"env":  "prod",
			"note": "a=b",
		}, tags)
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Parallel()
		_, err := parseTags([]string{"team"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key=value")
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		_, err := parseTags([]string{"=value"})
		require.Error(t, err)
	})
}

func TestToParameterJSON(t *testing.T) {
	t.Parallel()

	updated := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	param := paramstore.Parameter{
		Path:      "/app/prod/db/password",
		Value:     "s3cret",
		Type:      paramstore.TypeSecret,
		Version:   3,
		UpdatedAt: updated,
	}

	withValue := toParameterJSON(param, true)
	assert.Equal(t, "s3cret", withValue.Value)
	assert.Equal(t, "secret", withValue.Type)
	assert.Equal(t, int64(3), withValue.Version)
	assert.Equal(t, "2024-03-01T12:30:00Z", withValue.UpdatedAt)

	withoutValue := toParameterJSON(param, false)
	assert.Empty(t, withoutValue.Value)
}

func TestPrintParameterTable(t *testing.T) {
	t.Parallel()

	params := []paramstore.Parameter{
		{Path: "/app/db/host", Type: paramstore.TypeText, Version: 1, Value: "db.example.com"},
		{Path: "/app/db/password", Type: paramstore.TypeSecret, Version: 2, Value: "s3cret"},
	}

	var buf bytes.Buffer
	printParameterTable(&buf, params, true)

	out := buf.String()
	assert.Contains(t, out, "db.example.com")
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "s3cret")
}
