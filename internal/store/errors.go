package store

import (
	"errors"
	"strings"

	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/systmms/envstore/pkg/paramstore"
)

// translateSSMError maps an SSM SDK error onto the typed errors of the
// paramstore contract. Unrecognized errors pass through unchanged.
func translateSSMError(err error, path, operation string) error {
	var notFound *ssmtypes.ParameterNotFound
	if errors.As(err, &notFound) {
		return paramstore.NotFoundError{Path: path}
	}

	var alreadyExists *ssmtypes.ParameterAlreadyExists
	if errors.As(err, &alreadyExists) {
		return paramstore.AlreadyExistsError{Path: path}
	}

	var invalidName *ssmtypes.ValidationException
	if errors.As(err, &invalidName) {
		return paramstore.InvalidPathError{Path: path, Reason: err.Error()}
	}

	if translated := translateAPIError(err, path, operation); translated != nil {
		return translated
	}
	return err
}

// translateSecretsError maps a Secrets Manager SDK error onto the typed
// errors of the paramstore contract.
func translateSecretsError(err error, path, operation string) error {
	var notFound *smtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return paramstore.NotFoundError{Path: path}
	}

	var alreadyExists *smtypes.ResourceExistsException
	if errors.As(err, &alreadyExists) {
		return paramstore.AlreadyExistsError{Path: path}
	}

	if translated := translateAPIError(err, path, operation); translated != nil {
		return translated
	}
	return err
}

// translateAPIError handles the error codes shared by both services. It
// returns nil when the error is not one of the recognized kinds.
func translateAPIError(err error, path, operation string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "AccessDenied", "UnauthorizedOperation":
			return paramstore.AccessDeniedError{Path: path, Operation: operation}
		case "ThrottlingException", "Throttling", "TooManyUpdates", "TooManyRequestsException":
			return paramstore.ThrottledError{Operation: operation}
		}
	}

	// Fall back to message sniffing for SDK errors that are not surfaced
	// as typed API errors.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "accessdenied"):
		return paramstore.AccessDeniedError{Path: path, Operation: operation}
	case strings.Contains(msg, "throttl"), strings.Contains(msg, "rate exceeded"):
		return paramstore.ThrottledError{Operation: operation}
	}
	return nil
}
