package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/pagehub/internal/secrets"
)

// Decision is the verifier's answer. Failure reasons are never surfaced to
// the caller; every failure path collapses to Authorized=false.
type Decision struct {
	Authorized bool
	SiteID     string
	TokenID    string
}

// Verifier validates capability tokens under an adversarial model: any
// string may be presented. Verification is a pure function of the token,
// the current time, and the signing secret. No store access.
type Verifier struct {
	secrets *secrets.Provider
	logger  *zap.Logger
	now     func() time.Time
}

// NewVerifier builds a verifier sharing the issuer's secret provider.
func NewVerifier(provider *secrets.Provider, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{secrets: provider, logger: logger, now: time.Now}
}

// Verify decides grant or deny for the presented token string. It never
// returns an error; internal faults deny.
func (v *Verifier) Verify(ctx context.Context, tokenStr string) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("panic during token verification", zap.Any("panic", r))
			decision = Decision{}
		}
	}()

	if tokenStr == "" {
		v.logger.Debug("verification denied", zap.String("reason", "empty token"))
		return Decision{}
	}

	secret, err := v.secrets.Get(ctx)
	if err != nil {
		// A configuration fault, not a bad token.
		v.logger.Error("verification denied: signing secret unavailable", zap.Error(err))
		return Decision{}
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithExpirationRequired())
	if err != nil {
		v.logger.Debug("verification denied", zap.String("reason", denyReason(err)))
		return Decision{}
	}
	if !parsed.Valid {
		v.logger.Debug("verification denied", zap.String("reason", "invalid token"))
		return Decision{}
	}

	// Unreachable for tokens minted by the issuer, but a validly signed
	// token without a bound site grants nothing.
	if claims.SiteID == "" {
		v.logger.Debug("verification denied", zap.String("reason", "missing siteId claim"))
		return Decision{}
	}

	return Decision{Authorized: true, SiteID: claims.SiteID, TokenID: claims.ID}
}

func denyReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature mismatch"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	default:
		return "invalid token"
	}
}
