package auth

import (
	"bytes"
	"context"
	"crypto/subtle"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/pagehub/internal/secrets"
)

// AdminGate validates the shared admin credential guarding privileged
// operations. One gate instance serves every call site.
type AdminGate interface {
	Authorize(ctx context.Context, proof string) (bool, error)
}

// SecretAdminGate compares the presented key against the value held in the
// secret store. The stored value may be the plain key or a bcrypt hash of it.
type SecretAdminGate struct {
	secrets *secrets.Provider
	logger  *zap.Logger
}

// NewSecretAdminGate builds the gate.
func NewSecretAdminGate(provider *secrets.Provider, logger *zap.Logger) *SecretAdminGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecretAdminGate{secrets: provider, logger: logger}
}

// Authorize reports whether proof matches the stored admin key. Store
// failures are returned so the caller can distinguish a configuration fault
// from a bad key; callers still fail closed either way.
func (g *SecretAdminGate) Authorize(ctx context.Context, proof string) (bool, error) {
	if proof == "" {
		return false, nil
	}

	stored, err := g.secrets.Get(ctx)
	if err != nil {
		g.logger.Error("admin key unavailable", zap.Error(err))
		return false, err
	}

	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword(stored, []byte(proof)) == nil, nil
	}
	return subtle.ConstantTimeCompare(stored, []byte(proof)) == 1, nil
}

func isBcryptHash(v []byte) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if bytes.HasPrefix(v, []byte(prefix)) {
			return true
		}
	}
	return false
}
