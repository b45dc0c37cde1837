package metrics_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/envstore/internal/metrics"
)

func TestRecorderBeforeInitIsNoOp(t *testing.T) {
	// Must not panic when metrics were never initialized.
	r := metrics.NewRecorder("aws.ssm")
	r.Observe("get", time.Now(), nil)
}

func TestRecorderAfterInit(t *testing.T) {
	metrics.Init()
	metrics.Init() // idempotent

	r := metrics.NewRecorder("aws.ssm")

	assert.NotPanics(t, func() {
		r.Observe("put", time.Now(), nil)
		r.Observe("put", time.Now(), errors.New("boom"))
		r.Observe("list", time.Now().Add(-50*time.Millisecond), nil)
	})
}

// Init may race with in-flight operations when a caller flips metrics on
// after stores are already serving; Observe must stay safe throughout.
func TestInitConcurrentWithObserve(t *testing.T) {
	r := metrics.NewRecorder("aws.ssm")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Observe("get", time.Now(), nil)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		metrics.Init()
	}()
	wg.Wait()
}
