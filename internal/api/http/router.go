package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pagehub/internal/api/http/handlers"
	"github.com/spec-kit/pagehub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Sites           *handlers.SitesHandler
	Tokens          *handlers.TokensHandler
	Content         *handlers.ContentHandler
	AdminMiddleware *auth.AdminMiddleware
	SiteAccess      *auth.SiteAccessMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	admin := app.Group("/admin", cfg.AdminMiddleware.Handle)
	admin.Post("/sites", cfg.Sites.Create)
	admin.Get("/sites", cfg.Sites.List)
	admin.Get("/sites/:id", cfg.Sites.Get)
	admin.Delete("/sites/:id", cfg.Sites.Delete)

	admin.Post("/sites/:id/tokens", cfg.Tokens.Issue)
	admin.Get("/sites/:id/tokens", cfg.Tokens.List)

	site := app.Group("/site", cfg.SiteAccess.Handle)
	site.Get("/info", cfg.Content.Info)
	site.Get("/content/*", cfg.Content.Get)
	site.Put("/content/*", cfg.Content.Put)
}
