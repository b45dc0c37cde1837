package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/internal/config"
	"github.com/systmms/envstore/internal/logging"
)

func TestInitCommand(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "envstore.yaml")
		cfg := &config.Config{Path: configPath, Logger: logging.New(false, true)}

		cmd := NewInitCommand(cfg)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(nil)
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "aws.ssm")

		// The generated file must load cleanly.
		loaded := &config.Config{Path: configPath, Logger: logging.New(false, true)}
		require.NoError(t, loaded.Load())

		name, backendCfg, err := loaded.GetBackend("")
		require.NoError(t, err)
		assert.Equal(t, "ssm", name)
		assert.Equal(t, "aws.ssm", backendCfg.Type)
	})

	t.Run("refuses to clobber an existing file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "envstore.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("version: 1\n"), 0644))

		cfg := &config.Config{Path: configPath, Logger: logging.New(false, true)}
		cmd := NewInitCommand(cfg)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(nil)

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}
