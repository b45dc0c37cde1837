// Package paramstore defines the core types and interfaces for hierarchical
// parameter management in envstore.
//
// A Parameter is a single named, versioned configuration value stored under
// a slash-delimited path such as /app/db/password. The Store interface
// provides a uniform CRUD surface over remote parameter backends like AWS
// SSM Parameter Store and AWS Secrets Manager.
//
// # Store Architecture
//
// envstore separates the contract (this package) from backend
// implementations (internal/store). A Store is constructed once with
// explicit configuration and an injected client; it never reads ambient
// global state. Every operation is a single synchronous remote call with no
// local caching, so Store implementations are stateless and safe for
// concurrent use.
//
// # Error Handling
//
// Backends surface failures as the typed errors defined in this package:
//
//   - NotFoundError for reads, updates, and deletes of absent paths
//   - AlreadyExistsError for non-overwriting writes to existing paths
//   - AccessDeniedError for credential and permission failures
//   - ThrottledError for backend rate limiting
//   - InvalidPathError for malformed hierarchical paths
//
// All of them work with errors.As. No error is retried or recovered
// internally; transient failures propagate to the caller.
//
// # Security Considerations
//
// Implementations must never log parameter values (use the logging.Secret
// wrapper) and must request decryption of secret-typed parameters only when
// the caller asked for values, not metadata.
package paramstore
