package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pagehub/internal/auth"
	"github.com/spec-kit/pagehub/internal/domain"
	"github.com/spec-kit/pagehub/internal/events"
	"github.com/spec-kit/pagehub/internal/observability"
	"github.com/spec-kit/pagehub/internal/repository"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

// AccessTokenService fronts the issuer for the admin API: it checks the
// target site exists, mints the token, and publishes the issuance event.
type AccessTokenService struct {
	issuer     *auth.Issuer
	sites      repository.SiteRepository
	records    repository.AccessTokenRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// AccessTokenDependencies encapsulates requirements for the service.
type AccessTokenDependencies struct {
	Issuer     *auth.Issuer
	SiteRepo   repository.SiteRepository
	RecordRepo repository.AccessTokenRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// NewAccessTokenService builds the service.
func NewAccessTokenService(deps AccessTokenDependencies) *AccessTokenService {
	return &AccessTokenService{
		issuer:     deps.Issuer,
		sites:      deps.SiteRepo,
		records:    deps.RecordRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// IssueForSite mints a capability token for an existing site. A
// non-positive validitySeconds selects the configured default.
func (s *AccessTokenService) IssueForSite(ctx context.Context, siteID string, validitySeconds int) (*auth.IssuedToken, error) {
	if _, err := s.sites.GetByID(ctx, siteID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("site", map[string]any{"site_id": siteID})
		}
		return nil, err
	}

	var validity time.Duration
	if validitySeconds > 0 {
		validity = time.Duration(validitySeconds) * time.Second
	}

	issued, err := s.issuer.Issue(ctx, siteID, validity)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTokenIssued()
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccessTokenIssued,
			SiteID:    siteID,
			Timestamp: time.Now().UTC(),
			Payload: events.AccessTokenIssuedPayload{
				TokenID:   issued.TokenID,
				ExpiresAt: issued.ExpiresAt,
			},
		})
	}
	return issued, nil
}

// ListForSite returns the issuance records for a site, newest first.
func (s *AccessTokenService) ListForSite(ctx context.Context, siteID string) ([]domain.AccessTokenRecord, error) {
	if _, err := s.sites.GetByID(ctx, siteID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("site", map[string]any{"site_id": siteID})
		}
		return nil, err
	}
	return s.records.ListBySite(ctx, siteID)
}
