package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/pagehub/internal/secrets"
)

func TestAdminGatePlainKey(t *testing.T) {
	provider := secrets.NewProvider(&staticSecretStore{value: []byte("super-secret-key")}, "secrets/admin")
	gate := NewSecretAdminGate(provider, nil)

	ok, err := gate.Authorize(context.Background(), "super-secret-key")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = gate.Authorize(context.Background(), "wrong-key")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = gate.Authorize(context.Background(), "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAdminGateBcryptHashedKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret-key"), bcrypt.MinCost)
	require.NoError(t, err)

	provider := secrets.NewProvider(&staticSecretStore{value: hash}, "secrets/admin")
	gate := NewSecretAdminGate(provider, nil)

	ok, err := gate.Authorize(context.Background(), "super-secret-key")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = gate.Authorize(context.Background(), "wrong-key")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAdminGateStoreFailure(t *testing.T) {
	provider := secrets.NewProvider(&staticSecretStore{err: errors.New("down")}, "secrets/admin")
	gate := NewSecretAdminGate(provider, nil)

	ok, err := gate.Authorize(context.Background(), "super-secret-key")
	require.Error(t, err)
	require.False(t, ok)
}

func TestAdminGateNotConfigured(t *testing.T) {
	provider := secrets.NewProvider(&staticSecretStore{value: []byte("x")}, "")
	gate := NewSecretAdminGate(provider, nil)

	ok, err := gate.Authorize(context.Background(), "anything")
	require.ErrorIs(t, err, secrets.ErrNotConfigured)
	require.False(t, ok)
}
