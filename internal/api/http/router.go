package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Places         *handlers.PlacesHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    *RateLimiter
	UploadDir      string
	WebAssets      nethttp.FileSystem
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/", cfg.Users.List)
	if cfg.RateLimiter != nil {
		users.Post("/signup", cfg.RateLimiter.Handle, cfg.Users.Signup)
		users.Post("/login", cfg.RateLimiter.Handle, cfg.Users.Login)
	} else {
		users.Post("/signup", cfg.Users.Signup)
		users.Post("/login", cfg.Users.Login)
	}

	places := api.Group("/places")
	places.Get("/user/:uid", cfg.Places.ListByUser)
	places.Get("/:pid", cfg.Places.Get)

	protected := places.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/", cfg.Places.Create)
	protected.Patch("/:pid", cfg.Places.Update)
	protected.Delete("/:pid", cfg.Places.Delete)

	if cfg.UploadDir != "" {
		app.Static("/uploads/images", cfg.UploadDir)
	}
	if cfg.WebAssets != nil {
		app.Use("/", filesystem.New(filesystem.Config{
			Root:  cfg.WebAssets,
			Index: "index.html",
		}))
	}
}
