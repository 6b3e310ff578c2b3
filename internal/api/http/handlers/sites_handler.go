package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pagehub/internal/api/dto"
	"github.com/spec-kit/pagehub/internal/domain"
	"github.com/spec-kit/pagehub/internal/service"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

// SitesHandler exposes the admin site provisioning endpoints.
type SitesHandler struct {
	sites *service.SiteService
}

// NewSitesHandler constructs handler.
func NewSitesHandler(siteService *service.SiteService) *SitesHandler {
	return &SitesHandler{sites: siteService}
}

// Create POST /admin/sites.
func (h *SitesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	site, err := h.sites.CreateSite(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": siteSummary(site)})
}

// List GET /admin/sites.
func (h *SitesHandler) List(c *fiber.Ctx) error {
	sites, err := h.sites.ListSites(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SiteSummary, 0, len(sites))
	for i := range sites {
		items = append(items, siteSummary(&sites[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/sites/:id.
func (h *SitesHandler) Get(c *fiber.Ctx) error {
	site, err := h.sites.GetSite(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteSummary(site)})
}

// Delete DELETE /admin/sites/:id.
func (h *SitesHandler) Delete(c *fiber.Ctx) error {
	if err := h.sites.DeleteSite(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func siteSummary(site *domain.Site) dto.SiteSummary {
	return dto.SiteSummary{
		ID:         site.ID,
		Name:       site.Name,
		BucketName: site.BucketName,
		Status:     string(site.Status),
		CreatedAt:  site.CreatedAt,
	}
}
