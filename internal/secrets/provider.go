package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotConfigured means no secret ref was supplied. Fatal, not retryable.
	ErrNotConfigured = errors.New("secret ref not configured")
	// ErrUnavailable means the backing store could not return a value. Transient.
	ErrUnavailable = errors.New("secret store unavailable")
)

// Store is the external key-value secret store contract. The ref is an
// opaque location identifier, never a literal secret.
type Store interface {
	GetSecret(ctx context.Context, ref string) ([]byte, error)
}

// Provider fetches one secret lazily and memoizes the first successful
// result for the remaining process lifetime. Concurrent first calls are
// collapsed into a single in-flight store request.
type Provider struct {
	store Store
	ref   string

	mu     sync.RWMutex
	cached []byte
	sf     singleflight.Group
}

// NewProvider builds a provider bound to one secret location.
func NewProvider(store Store, ref string) *Provider {
	return &Provider{store: store, ref: ref}
}

// Get returns the secret bytes, fetching on first use. Failed fetches are
// not cached, so a transient store outage heals on the next call.
func (p *Provider) Get(ctx context.Context) ([]byte, error) {
	if p.ref == "" {
		return nil, ErrNotConfigured
	}

	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	val, err, _ := p.sf.Do(p.ref, func() (any, error) {
		p.mu.RLock()
		cached := p.cached
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		secret, err := p.store.GetSecret(ctx, p.ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if len(secret) == 0 {
			return nil, fmt.Errorf("%w: empty value at ref", ErrUnavailable)
		}

		p.mu.Lock()
		p.cached = secret
		p.mu.Unlock()
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]byte), nil
}
