package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pagehub/internal/observability"
	"github.com/spec-kit/pagehub/internal/secrets"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

const siteContextKey = "site_context"

// SiteContext is the bound context handed to downstream handlers after a
// capability token is granted.
type SiteContext struct {
	SiteID  string
	TokenID string
}

// SiteAccessMiddleware adapts the verifier's decision into the router's
// access-control hook. It fails closed on any unexpected input.
type SiteAccessMiddleware struct {
	verifier *Verifier
	metrics  *observability.Metrics
}

// NewSiteAccessMiddleware constructs the gateway middleware.
func NewSiteAccessMiddleware(verifier *Verifier, metrics *observability.Metrics) *SiteAccessMiddleware {
	return &SiteAccessMiddleware{verifier: verifier, metrics: metrics}
}

// Handle enforces capability token access on protected routes.
func (m *SiteAccessMiddleware) Handle(c *fiber.Ctx) error {
	decision := m.verifier.Verify(c.UserContext(), bearerToken(c))
	m.metrics.RecordVerification(decision.Authorized)
	if !decision.Authorized || decision.SiteID == "" {
		return apperrors.NewUnauthorized("not authorized")
	}

	c.Locals(siteContextKey, &SiteContext{SiteID: decision.SiteID, TokenID: decision.TokenID})
	return c.Next()
}

// bearerToken extracts the token from the Authorization header. A bare
// token without the Bearer prefix is accepted; the verifier denies garbage
// either way.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}

// SiteFromContext retrieves the granted site context.
func SiteFromContext(c *fiber.Ctx) (*SiteContext, bool) {
	val := c.Locals(siteContextKey)
	if val == nil {
		return nil, false
	}
	sc, ok := val.(*SiteContext)
	return sc, ok
}

// AdminMiddleware guards privileged routes behind the admin gate.
type AdminMiddleware struct {
	gate AdminGate
}

// NewAdminMiddleware constructs middleware around the gate.
func NewAdminMiddleware(gate AdminGate) *AdminMiddleware {
	return &AdminMiddleware{gate: gate}
}

// Handle validates the X-API-Key header before admitting the request.
func (m *AdminMiddleware) Handle(c *fiber.Ctx) error {
	ok, err := m.gate.Authorize(c.UserContext(), c.Get("X-API-Key"))
	if err != nil {
		if errors.Is(err, secrets.ErrNotConfigured) {
			return apperrors.NewConfigurationError("admin api key secret ref not configured")
		}
		return apperrors.NewSecretUnavailable(err)
	}
	if !ok {
		return apperrors.NewUnauthorized("invalid admin api key")
	}
	return c.Next()
}
