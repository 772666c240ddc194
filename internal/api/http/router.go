package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/http/handlers"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Properties     *handlers.PropertiesHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.Middleware
	PropertyOwner  auth.OwnerResolver
	Upload         config.UploadConfig
}

// RegisterRoutes wires HTTP routes. Guards compose per route: bearer
// authentication first, then role, then ownership where the operation needs
// it; the first failing guard short-circuits the chain.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Login and self-registration are the only routes without a bearer token.
	app.Post("/login", cfg.Auth.Login)
	app.Post("/users", cfg.Users.Register)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/refresh", cfg.Auth.Refresh)
	protected.Post("/logout", cfg.Auth.Logout)

	protected.Get("/users", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	protected.Get("/users/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Get)
	protected.Put("/users/:id", cfg.Users.Update)
	protected.Put("/users/:id/password", cfg.Users.ChangePassword)

	ownership := auth.RequireOwnership("property", "id", cfg.PropertyOwner)

	properties := protected.Group("/properties")
	properties.Get("", cfg.Properties.List)
	properties.Get("/:id", cfg.Properties.Get)
	properties.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleSeller), cfg.Properties.Create)
	properties.Put("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleSeller), ownership, cfg.Properties.Update)
	properties.Delete("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleSeller), ownership, cfg.Properties.Delete)
	properties.Post("/:id/upload_image", auth.RequireRole(domain.RoleSeller), ownership, cfg.Uploads.UploadImage)
	properties.Post("/:id/upload_docs", auth.RequireRole(domain.RoleSeller), ownership, cfg.Uploads.UploadDocs)

	app.Static("/uploads/images", cfg.Upload.ImagesDir)
	app.Static("/uploads/docs", cfg.Upload.DocsDir)
}
