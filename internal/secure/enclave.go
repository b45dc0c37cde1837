// Package secure provides memory-safe handling of parameter values on their
// way to the remote store.
//
// Secret-typed values read from stdin or flags are held in a memguard
// enclave (encrypted at rest in memory, mlocked against swapping) until the
// moment of the remote call, then wiped. If mlock is unavailable the
// library degrades to standard memory.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Buffer holds a sensitive value in protected memory.
//
// memguard.Enclave has no direct Destroy method; destruction here marks the
// buffer unusable and lets the encrypted enclave be collected. Call
// memguard.Purge() at process exit for full cleanup.
type Buffer struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// destroyed allows idempotent Destroy() and prevents use after destroy
	destroyed bool
}

// NewBuffer copies data into a protected memory region. The caller should
// zero the original slice afterwards.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// Open decrypts the value into a locked buffer. The caller MUST call
// Destroy() on the returned LockedBuffer to wipe the plaintext:
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
//	value := string(locked.Bytes())
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}
	return b.enclave.Open()
}

// Destroy marks the buffer as destroyed. Idempotent; after Destroy, Open
// returns an empty buffer.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}
