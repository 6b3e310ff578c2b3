package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pagehub/internal/api/dto"
	"github.com/spec-kit/pagehub/internal/service"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

// TokensHandler exposes the admin token issuance endpoints. The admin gate
// middleware has already validated the caller before these run.
type TokensHandler struct {
	tokens *service.AccessTokenService
}

// NewTokensHandler constructs handler.
func NewTokensHandler(tokenService *service.AccessTokenService) *TokensHandler {
	return &TokensHandler{tokens: tokenService}
}

// Issue POST /admin/sites/:id/tokens.
func (h *TokensHandler) Issue(c *fiber.Ctx) error {
	var req dto.IssueTokenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if req.ValiditySeconds < 0 {
		return apperrors.NewValidationError("validity_seconds must be positive", nil)
	}

	issued, err := h.tokens.IssueForSite(c.Context(), c.Params("id"), req.ValiditySeconds)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.IssueTokenResponse{
			Token:     issued.Token,
			TokenID:   issued.TokenID,
			ExpiresAt: issued.ExpiresAt,
		},
	})
}

// List GET /admin/sites/:id/tokens.
func (h *TokensHandler) List(c *fiber.Ctx) error {
	records, err := h.tokens.ListForSite(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.TokenRecordSummary, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.TokenRecordSummary{
			TokenID:   rec.TokenID,
			SiteID:    rec.SiteID,
			IssuedAt:  rec.IssuedAt,
			ExpiresAt: rec.ExpiresAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
