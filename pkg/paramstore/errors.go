package paramstore

import "fmt"

// NotFoundError indicates that no parameter exists at the requested path.
//
// Backends return it from Get, Update and Delete when the path is absent.
// It is distinct from permission failures: the caller could see the path
// if it existed.
type NotFoundError struct {
	// Path is the hierarchical path that could not be found.
	Path string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("parameter %q not found", e.Path)
}

// AlreadyExistsError indicates a non-overwriting Put hit an existing path.
// The stored value is untouched; use Update or Put with Overwrite to
// replace it.
type AlreadyExistsError struct {
	// Path is the hierarchical path that already holds a parameter.
	Path string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("parameter %q already exists (use update or overwrite to replace it)", e.Path)
}

// AccessDeniedError indicates the backend rejected the operation for
// credential or permission reasons.
type AccessDeniedError struct {
	// Path is the parameter involved, empty for store-level probes.
	Path string

	// Operation is the operation that was denied, e.g. "put".
	Operation string
}

func (e AccessDeniedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("access denied during %s", e.Operation)
	}
	return fmt.Sprintf("access denied during %s of %q", e.Operation, e.Path)
}

// ThrottledError indicates the backend rate-limited the request. envstore
// performs no internal retries; callers decide whether and when to retry.
type ThrottledError struct {
	// Operation is the operation that was throttled.
	Operation string
}

func (e ThrottledError) Error() string {
	return fmt.Sprintf("request throttled by the parameter store during %s", e.Operation)
}

// InvalidPathError indicates a malformed hierarchical path, rejected before
// or by the remote call.
type InvalidPathError struct {
	// Path is the offending input.
	Path string

	// Reason describes what is wrong with it.
	Reason string
}

func (e InvalidPathError) Error() string {
	return fmt.Sprintf("invalid parameter path %q: %s", e.Path, e.Reason)
}
