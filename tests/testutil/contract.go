// Package testutil provides testing utilities shared across envstore tests.
//
// This file implements the store contract test framework that validates all
// backends implement the paramstore.Store interface correctly and
// consistently, whether they run against fakes or a live endpoint.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/envstore/pkg/paramstore"
)

// StoreTestCase defines a backend under test.
type StoreTestCase struct {
	// Name is a descriptive name for this test case (usually the backend name)
	Name string

	// Store is the backend implementation to test
	Store paramstore.Store

	// BasePath is a path prefix the suite may freely create and delete
	// parameters under. Each subtest uses its own leaf to stay independent.
	BasePath string

	// SkipValidation skips the Validate() test if true.
	// Useful when the backing endpoint rejects describe-style calls.
	SkipValidation bool

	// SkipConcurrency skips the concurrency test if true.
	SkipConcurrency bool
}

// RunStoreContractTests runs the full contract suite against a backend:
//
//   - Name() returns a consistent, non-empty value
//   - Put/Get round-trips value, type and version
//   - Put without overwrite refuses to clobber
//   - Update requires an existing parameter
//   - List returns everything under a prefix and nothing else
//   - Delete removes the parameter and errors on a second delete
//   - Missing paths surface paramstore.NotFoundError
//   - Concurrent reads are safe
//
// Example usage:
//
//	tc := testutil.StoreTestCase{
//	    Name:     "aws.ssm",
//	    Store:    ssmStore,
//	    BasePath: "/envstore-contract",
//	}
//	testutil.RunStoreContractTests(t, tc)
func RunStoreContractTests(t *testing.T, tc StoreTestCase) {
	t.Helper()

	require.NotNil(t, tc.Store, "Store cannot be nil")
	require.NotEmpty(t, tc.Name, "Test case name cannot be empty")
	require.NotEmpty(t, tc.BasePath, "BasePath cannot be empty")

	t.Run("Name", func(t *testing.T) {
		testStoreName(t, tc)
	})

	if !tc.SkipValidation {
		t.Run("Validate", func(t *testing.T) {
			testStoreValidate(t, tc)
		})
	}

	t.Run("PutGet", func(t *testing.T) {
		testStorePutGet(t, tc)
	})

	t.Run("PutNoOverwrite", func(t *testing.T) {
		testStorePutNoOverwrite(t, tc)
	})

	t.Run("Update", func(t *testing.T) {
		testStoreUpdate(t, tc)
	})

	t.Run("List", func(t *testing.T) {
		testStoreList(t, tc)
	})

	t.Run("Delete", func(t *testing.T) {
		testStoreDelete(t, tc)
	})

	t.Run("NotFound", func(t *testing.T) {
		testStoreNotFound(t, tc)
	})

	if !tc.SkipConcurrency {
		t.Run("Concurrency", func(t *testing.T) {
			testStoreConcurrency(t, tc)
		})
	}
}

func testStoreName(t *testing.T, tc StoreTestCase) {
	t.Helper()

	name := tc.Store.Name()
	assert.NotEmpty(t, name, "Name() must return a non-empty value")
	assert.Equal(t, name, tc.Store.Name(), "Name() must be stable across calls")
}

func testStoreValidate(t *testing.T, tc StoreTestCase) {
	t.Helper()

	assert.NoError(t, tc.Store.Validate(context.Background()))
}

func testStorePutGet(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	path := tc.BasePath + "/putget"

	created, err := tc.Store.Put(ctx, path, "contract-value", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Store.Delete(ctx, path) })

	got, err := tc.Store.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "contract-value", got.Value)
	assert.Equal(t, paramstore.TypeText, got.Type)
	// Backends with opaque version identifiers report 0.
	if created.Version != 0 {
		assert.Equal(t, created.Version, got.Version)
	}
}

func testStorePutNoOverwrite(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	path := tc.BasePath + "/no-overwrite"

	_, err := tc.Store.Put(ctx, path, "original", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Store.Delete(ctx, path) })

	_, err = tc.Store.Put(ctx, path, "usurper", paramstore.TypeText, paramstore.PutOptions{})
	require.Error(t, err, "Put without Overwrite must refuse to clobber")

	var exists paramstore.AlreadyExistsError
	assert.ErrorAs(t, err, &exists)

	got, err := tc.Store.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Value, "failed Put must not change the value")
}

func testStoreUpdate(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	path := tc.BasePath + "/update"

	// Updating a missing parameter must fail and create nothing.
	_, err := tc.Store.Update(ctx, path, "value", paramstore.TypeText, paramstore.PutOptions{})
	require.Error(t, err)
	var notFound paramstore.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = tc.Store.Get(ctx, path)
	assert.Error(t, err, "failed Update must not create the parameter")

	created, err := tc.Store.Put(ctx, path, "v1", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Store.Delete(ctx, path) })

	updated, err := tc.Store.Update(ctx, path, "v2", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	if created.Version != 0 && updated.Version != 0 {
		assert.Greater(t, updated.Version, created.Version, "Update must advance the version")
	}

	got, err := tc.Store.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Value)
}

func testStoreList(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	prefix := tc.BasePath + "/list"

	paths := []string{prefix + "/a", prefix + "/b", prefix + "/nested/c"}
	for i, p := range paths {
		_, err := tc.Store.Put(ctx, p, fmt.Sprintf("value-%d", i), paramstore.TypeText, paramstore.PutOptions{})
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		for _, p := range paths {
			_ = tc.Store.Delete(ctx, p)
		}
	})

	params, err := tc.Store.List(ctx, prefix)
	require.NoError(t, err)
	require.Len(t, params, len(paths))
	for _, p := range params {
		assert.Contains(t, p.Path, "/list/")
	}

	empty, err := tc.Store.List(ctx, tc.BasePath+"/list-nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, empty, "List must return an empty slice, not nil")
	assert.Empty(t, empty)
}

func testStoreDelete(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	path := tc.BasePath + "/delete"

	_, err := tc.Store.Put(ctx, path, "doomed", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)

	require.NoError(t, tc.Store.Delete(ctx, path))

	_, err = tc.Store.Get(ctx, path)
	require.Error(t, err, "Get after Delete must fail")

	err = tc.Store.Delete(ctx, path)
	require.Error(t, err, "second Delete must fail")
	var notFound paramstore.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func testStoreNotFound(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	path := tc.BasePath + "/never-created"

	_, err := tc.Store.Get(ctx, path)
	require.Error(t, err)
	var notFound paramstore.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Path, "never-created")
}

func testStoreConcurrency(t *testing.T, tc StoreTestCase) {
	t.Helper()
	ctx := context.Background()
	path := tc.BasePath + "/concurrent"

	_, err := tc.Store.Put(ctx, path, "shared", paramstore.TypeText, paramstore.PutOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Store.Delete(ctx, path) })

	const readers = 8
	var wg sync.WaitGroup
	errs := make(chan error, readers)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := tc.Store.Get(ctx, path)
			if err != nil {
				errs <- err
				return
			}
			if got.Value != "shared" {
				errs <- fmt.Errorf("unexpected value %q", got.Value)
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
