package logging_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/envstore/internal/logging"
)

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(false, true, &buf)

	logger.Info("created %s", "/app/db/user")
	logger.Warn("slow response")
	logger.Error("delete failed")

	out := buf.String()
	assert.Contains(t, out, "✓ created /app/db/user")
	assert.Contains(t, out, "⚠ slow response")
	assert.Contains(t, out, "✗ delete failed")
}

func TestLoggerDebugSuppressedByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(false, true, &buf)
	logger.Debug("should not appear")
	assert.Empty(t, buf.String())

	debugLogger := logging.NewWithWriter(true, true, &buf)
	debugLogger.Debug("now visible")
	assert.Contains(t, buf.String(), "[DEBUG] now visible")
}

func TestSecretIsAlwaysRedacted(t *testing.T) {
	t.Parallel()

	s := logging.Secret("hunter2-is-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", s))
}

func TestRedact(t *testing.T) {
	t.Parallel()

	out := logging.Redact("value is hunter2-is-secret here", []string{"hunter2-is-secret"})
	assert.Equal(t, "value is [REDACTED] here", out)

	// Trivial secrets are left alone to avoid mangling unrelated text.
	out = logging.Redact("abc everywhere", []string{"abc"})
	assert.Equal(t, "abc everywhere", out)
}
