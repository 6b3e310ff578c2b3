package secrets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingStore struct {
	mu    sync.Mutex
	calls int32
	value []byte
	err   error
}

func (s *countingStore) GetSecret(ctx context.Context, ref string) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.value, nil
}

func TestProviderMemoizesFirstSuccess(t *testing.T) {
	store := &countingStore{value: []byte("signing-key")}
	provider := NewProvider(store, "secrets/jwt")

	for i := 0; i < 5; i++ {
		got, err := provider.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, []byte("signing-key"), got)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&store.calls))
}

func TestProviderCollapsesConcurrentFirstCalls(t *testing.T) {
	store := &countingStore{value: []byte("signing-key")}
	provider := NewProvider(store, "secrets/jwt")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := provider.Get(context.Background())
			require.NoError(t, err)
			require.Equal(t, []byte("signing-key"), got)
		}()
	}
	wg.Wait()

	// All racing callers share one in-flight fetch.
	require.LessOrEqual(t, atomic.LoadInt32(&store.calls), int32(2))
}

func TestProviderNotConfigured(t *testing.T) {
	store := &countingStore{value: []byte("x")}
	provider := NewProvider(store, "")

	_, err := provider.Get(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Equal(t, int32(0), atomic.LoadInt32(&store.calls))
}

func TestProviderRetriesAfterStoreFailure(t *testing.T) {
	store := &countingStore{err: errors.New("connection refused")}
	provider := NewProvider(store, "secrets/jwt")

	_, err := provider.Get(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)

	store.mu.Lock()
	store.err = nil
	store.value = []byte("recovered")
	store.mu.Unlock()

	got, err := provider.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("recovered"), got)
}

func TestProviderRejectsEmptyValue(t *testing.T) {
	store := &countingStore{value: nil}
	provider := NewProvider(store, "secrets/jwt")

	_, err := provider.Get(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
