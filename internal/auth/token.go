package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/pagehub/internal/domain"
	"github.com/spec-kit/pagehub/internal/secrets"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

// DefaultValidity is the capability lifetime when the caller does not ask
// for a specific one.
const DefaultValidity = 48 * time.Hour

// Claims describes the capability token payload. siteId is the resource the
// bearer may act on; jti traces the token back to its issuance record.
type Claims struct {
	SiteID string `json:"siteId"`
	jwt.RegisteredClaims
}

// IssuedToken is the result of a successful mint.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// RecordStore persists issuance metadata. The record is observability-only:
// losing it never affects whether the token verifies.
type RecordStore interface {
	Insert(ctx context.Context, rec *domain.AccessTokenRecord) error
}

// Issuer mints signed, expiring capability tokens bound to a single site.
type Issuer struct {
	secrets    *secrets.Provider
	records    RecordStore
	defaultTTL time.Duration
	now        func() time.Time
}

// NewIssuer builds an issuer. The admin credential check is a precondition
// enforced by the caller; the issuer itself only validates its inputs.
func NewIssuer(provider *secrets.Provider, records RecordStore, defaultTTL time.Duration) *Issuer {
	if defaultTTL <= 0 {
		defaultTTL = DefaultValidity
	}
	return &Issuer{
		secrets:    provider,
		records:    records,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Issue mints a token for the site. The issuance record is written before
// signing; a failed write aborts the mint so no untraceable token is ever
// handed out.
func (i *Issuer) Issue(ctx context.Context, siteID string, validity time.Duration) (*IssuedToken, error) {
	if siteID == "" {
		return nil, apperrors.NewValidationError("siteId required", nil)
	}
	if validity <= 0 {
		validity = i.defaultTTL
	}

	tokenID := uuid.NewString()
	issuedAt := i.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(validity)

	rec := &domain.AccessTokenRecord{
		TokenID:   tokenID,
		SiteID:    siteID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	if err := i.records.Insert(ctx, rec); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	secret, err := i.secrets.Get(ctx)
	if err != nil {
		if errors.Is(err, secrets.ErrNotConfigured) {
			return nil, apperrors.NewConfigurationError("token signing secret ref not configured")
		}
		return nil, apperrors.NewSigningError(err)
	}

	claims := &Claims{
		SiteID: siteID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return nil, apperrors.NewSigningError(err)
	}

	return &IssuedToken{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}
