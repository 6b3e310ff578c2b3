package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pagehub/internal/auth"
	"github.com/spec-kit/pagehub/internal/service"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

// ContentHandler serves the site-scoped content plane. Routes are protected
// by the capability token gateway; the site identifier comes from the token,
// never from the request.
type ContentHandler struct {
	sites *service.SiteService
}

// NewContentHandler constructs handler.
func NewContentHandler(siteService *service.SiteService) *ContentHandler {
	return &ContentHandler{sites: siteService}
}

// Get GET /site/content/*.
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	sc, ok := auth.SiteFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authorized")
	}

	body, contentType, err := h.sites.GetContent(c.Context(), sc.SiteID, c.Params("*"))
	if err != nil {
		return apperrors.NewNotFound("object", map[string]any{"key": c.Params("*")})
	}
	defer body.Close()

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.SendStream(body)
}

// Put PUT /site/content/*.
func (h *ContentHandler) Put(c *fiber.Ctx) error {
	sc, ok := auth.SiteFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authorized")
	}

	key := c.Params("*")
	if key == "" {
		return apperrors.NewValidationError("object key required", nil)
	}

	body := c.Body()
	err := h.sites.PutContent(c.Context(), sc.SiteID, key, c.Get(fiber.HeaderContentType), bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"key": key, "size": len(body)}})
}

// Info GET /site/info — echoes the granted context for debugging clients.
func (h *ContentHandler) Info(c *fiber.Ctx) error {
	sc, ok := auth.SiteFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authorized")
	}
	site, err := h.sites.GetSite(c.Context(), sc.SiteID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"site_id": site.ID,
		"name":    site.Name,
		"status":  string(site.Status),
	}})
}
