package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/zetroo/catalog-service/internal/api/http/handlers"
	"github.com/zetroo/catalog-service/internal/auth"
	"github.com/zetroo/catalog-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Products      *handlers.ProductsHandler
	Authenticator *auth.Authenticator
	AdminGuard    *auth.AdminGuard
	Metrics       *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Guards are applied per route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	protect := cfg.Authenticator.Protect
	admin := cfg.AdminGuard.Require

	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/jwt", cfg.Auth.IssueCredential)
	app.Post("/logout", cfg.Auth.Logout)

	app.Post("/user", cfg.Users.Save)
	app.Get("/users", protect(admin(cfg.Users.List)))
	app.Get("/user/:email", cfg.Users.Role)

	app.Post("/products", protect(admin(cfg.Products.Create)))
	app.Get("/products", cfg.Products.List)
	app.Get("/products/filter", cfg.Products.Filter)
	app.Get("/productDetails/:id", cfg.Products.Get)
}
