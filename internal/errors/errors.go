package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/envstore/pkg/paramstore"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError enhances backend-specific errors with context
func StoreError(backend string, operation string, err error) error {
	suggestion := getStoreSuggestion(backend, err)

	return UserError{
		Message:    fmt.Sprintf("%s error during %s", backend, operation),
		Suggestion: suggestion,
		Err:        err,
	}
}

// getStoreSuggestion returns helpful suggestions based on backend and error
func getStoreSuggestion(backend string, err error) string {
	var (
		notFound  paramstore.NotFoundError
		exists    paramstore.AlreadyExistsError
		denied    paramstore.AccessDeniedError
		throttled paramstore.ThrottledError
	)

	switch {
	case errors.As(err, &notFound):
		if backend == "aws.secretsmanager" {
			return "Verify the secret name and region. List secrets with: 'aws secretsmanager list-secrets'"
		}
		return "Verify the parameter path. SSM parameter names are case-sensitive"

	case errors.As(err, &exists):
		if backend == "aws.secretsmanager" {
			return "A secret with this name already exists. Use 'envstore update' or pass --overwrite"
		}
		return "Use 'envstore update' to change it, or pass --overwrite to replace it"

	case errors.As(err, &denied):
		if backend == "aws.secretsmanager" {
			return "Check IAM permissions: secretsmanager:GetSecretValue, secretsmanager:CreateSecret, secretsmanager:DeleteSecret"
		}
		return "Check IAM permissions: ssm:GetParameter, ssm:PutParameter, ssm:DeleteParameter, ssm:GetParametersByPath and kms:Decrypt (for secrets)"

	case errors.As(err, &throttled):
		return "AWS rate limit exceeded. Wait a moment and try again"
	}

	errStr := err.Error()
	if strings.Contains(errStr, "InvalidKeyId") {
		return "The KMS key for this secret parameter may not exist or you lack kms:Decrypt permission"
	}

	// Generic suggestions
	if strings.Contains(errStr, "credentials") || strings.Contains(errStr, "no EC2 IMDS role found") {
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	}
	if strings.Contains(errStr, "region") {
		return "Check that you're using the correct AWS region. Set it in envstore.yaml or via AWS_REGION"
	}
	if strings.Contains(errStr, "timeout") {
		return "The operation timed out. Check your network connection and try again"
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return "Unable to connect. Check your network and backend configuration"
	}

	return ""
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Unwrap to get the root cause
	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	// Already a user-friendly error
	if _, ok := err.(UserError); ok {
		return err
	}
	if _, ok := err.(ConfigError); ok {
		return err
	}

	errStr := rootErr.Error()

	if strings.Contains(errStr, "yaml:") {
		return ConfigError{
			Message:    "Invalid YAML format",
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	if strings.Contains(errStr, "no such file or directory") {
		return UserError{
			Message:    "File or directory not found",
			Suggestion: "Verify the path exists and is spelled correctly",
			Err:        err,
		}
	}

	return err
}
