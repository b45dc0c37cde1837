// Package fakes provides in-memory fakes for the AWS SDK clients used by
// the store backends. The fakes are map-backed, return the same typed
// errors as the real services, and allow per-call overrides through *Func
// fields for failure injection.
package fakes
