// Package store implements the paramstore.Store contract over AWS backends.
//
// Two backends are provided: SSM Parameter Store (aws.ssm), the primary
// hierarchical store, and Secrets Manager (aws.secretsmanager) for flat
// secret names. Both hide the AWS SDK behind narrow client interfaces so
// tests can inject fakes, and both are constructed from explicit typed
// configuration rather than ambient global state.
package store
