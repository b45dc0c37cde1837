package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCommand_MissingConfig(t *testing.T) {
	t.Parallel()

	cmd := NewDoctorCommand(testConfig(t))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestPrintHealthReport(t *testing.T) {
	t.Parallel()

	cmd := NewDoctorCommand(testConfig(t))
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	printHealthReport(cmd, []BackendHealth{
		{Name: "ssm", Type: "aws.ssm", Status: "healthy", Message: "Backend is ready"},
		{Name: "secrets", Type: "aws.secretsmanager", Status: "error", Error: "access denied"},
	})

	out := buf.String()
	assert.Contains(t, out, "BACKEND")
	assert.Contains(t, out, "Backend is ready")
	assert.Contains(t, out, "access denied")
}
