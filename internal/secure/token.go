package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Reveal after Destroy.
var ErrDestroyed = errors.New("token has been destroyed")

// Token is a credential sealed in a memguard enclave.
type Token struct {
	enclave   *memguard.Enclave
	mu        sync.RWMutex
	destroyed bool
}

// NewToken seals value. An empty value is rejected because memguard does
// not create empty enclaves.
func NewToken(value string) (*Token, error) {
	if value == "" {
		return nil, errors.New("token is empty")
	}
	return &Token{enclave: memguard.NewEnclave([]byte(value))}, nil
}

// Reveal decrypts the token and returns a copy of it. The decrypted
// buffer is wiped before returning.
func (t *Token) Reveal() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.destroyed {
		return "", ErrDestroyed
	}

	locked, err := t.enclave.Open()
	if err != nil {
		return "", err
	}
	defer locked.Destroy()

	return string(locked.Bytes()), nil
}

// Destroy drops the enclave. It is idempotent and safe on a nil Token; the
// encrypted data is left to the garbage collector and its key to
// memguard.Purge.
func (t *Token) Destroy() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enclave = nil
	t.destroyed = true
}
