package paramstore

import (
	"context"
	"fmt"
	"time"
)

// Type classifies a parameter value.
type Type string

const (
	// TypeText is a plain text parameter.
	TypeText Type = "text"

	// TypeSecret is an encrypted parameter. Backends store it encrypted at
	// rest and decrypt it on read.
	TypeSecret Type = "secret"

	// TypeList is an ordered list of strings, encoded as a single
	// comma-separated value.
	TypeList Type = "list"
)

// ParseType converts a user-supplied string into a Type.
// Only "text", "secret" and "list" are recognized.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeText, TypeSecret, TypeList:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown parameter type %q (expected text, secret or list)", s)
	}
}

// Tier selects the backend storage tier for a parameter.
type Tier string

const (
	// TierStandard allows values up to 4 KB.
	TierStandard Tier = "standard"

	// TierAdvanced allows values up to 8 KB.
	TierAdvanced Tier = "advanced"
)

// ParseTier converts a user-supplied string into a Tier.
// An empty string defaults to TierStandard.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case "":
		return TierStandard, nil
	case TierStandard, TierAdvanced:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown tier %q (expected standard or advanced)", s)
	}
}

// Parameter is a single versioned configuration value stored under a
// hierarchical path. The path is the sole key: it is immutable once the
// parameter exists, and every overwrite increments Version.
type Parameter struct {
	// Path is the slash-delimited location of the parameter, e.g.
	// /app/db/password.
	Path string

	// Value is the current version's value. For TypeList it is the
	// comma-joined encoding of the list.
	Value string

	// Type classifies the value as text, secret or list.
	Type Type

	// Version starts at 1 on creation and increments on every overwrite.
	Version int64

	// UpdatedAt is when this version was written. Zero if the backend did
	// not report it.
	UpdatedAt time.Time

	// ARN is the backend's resource identifier, when available.
	ARN string

	// DataType is the backend's value data type hint, when available.
	DataType string
}

// PutOptions carries the optional settings for Put and Update.
type PutOptions struct {
	// Overwrite replaces an existing parameter's value and increments its
	// version. When false, Put fails with AlreadyExistsError if the path
	// already exists.
	Overwrite bool

	// Description is an optional human-readable note stored alongside the
	// parameter.
	Description string

	// KMSKeyID selects the encryption key for TypeSecret parameters.
	// Empty means the backend's default key.
	KMSKeyID string

	// Tier selects the storage tier. Empty means TierStandard.
	Tier Tier

	// Tags are attached on creation. Backends may reject tags combined
	// with Overwrite.
	Tags map[string]string
}

// Store is the contract every parameter backend implements.
//
// Implementations are stateless facades over a remote service: each method
// is one blocking round trip (Update may probe existence first), no results
// are cached, and callers own any parallelism. Implementations must be safe
// for concurrent use.
type Store interface {
	// Name returns the backend's stable identifier, e.g. "aws.ssm".
	Name() string

	// Put creates the parameter at path. With opts.Overwrite false it
	// fails with AlreadyExistsError when the path already exists; with
	// Overwrite true it replaces the value and increments the version.
	// The returned Parameter carries the written version.
	Put(ctx context.Context, path, value string, typ Type, opts PutOptions) (Parameter, error)

	// Get returns the current version of the parameter at the exact path,
	// or NotFoundError if it does not exist. Secret values are decrypted.
	Get(ctx context.Context, path string) (Parameter, error)

	// List returns every parameter whose path is under prefix. A prefix
	// with no matches yields an empty slice, not an error. Order is not
	// guaranteed.
	List(ctx context.Context, prefix string) ([]Parameter, error)

	// Delete removes the parameter and all of its versions, or fails with
	// NotFoundError when the path is absent.
	Delete(ctx context.Context, path string) error

	// Update replaces the value of an existing parameter, failing with
	// NotFoundError when the path does not exist. It never creates.
	Update(ctx context.Context, path, value string, typ Type, opts PutOptions) (Parameter, error)

	// Validate checks that the backend is reachable with the configured
	// credentials. It should be cheap and require minimal permissions.
	Validate(ctx context.Context) error
}
