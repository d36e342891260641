package routes

import (
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/config"
	"github.com/aaditya996/City-Issue-Tracker/internal/handlers"
	"github.com/aaditya996/City-Issue-Tracker/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Issue   *handlers.IssueHandler
	Profile *handlers.ProfileHandler
}

// Options carries the collaborators that are optional at runtime.
type Options struct {
	Actors middleware.ActorResolver
	// ReportCounter enables the per-reporter daily limit when non-nil.
	ReportCounter middleware.Counter
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, opts Options) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	auth.Delete("/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	authenticated := []fiber.Handler{middleware.JWTProtected(cfg), middleware.ResolveActor(opts.Actors)}
	optional := []fiber.Handler{middleware.OptionalAuth(cfg), middleware.ResolveActor(opts.Actors)}
	loginRequired := []fiber.Handler{middleware.LoginRequired(cfg), middleware.ResolveActor(opts.Actors)}

	// Issues
	issues := api.Group("/issues")
	issues.Get("/", h.Issue.List)
	issues.Get("/choices", h.Issue.Choices)

	report := append([]fiber.Handler{}, authenticated...)
	if opts.ReportCounter != nil {
		report = append(report, middleware.ReportRateLimiter(opts.ReportCounter, cfg.ReportLimitPerDay, 24*time.Hour))
	}
	issues.Post("/", append(report, h.Issue.Create)...)

	issues.Get("/:id", h.Issue.Detail)
	issues.Post("/:id/status", append(optional, h.Issue.UpdateStatus)...)
	issues.Post("/:id/comments", append(loginRequired, h.Issue.AddComment)...)

	// Per-user pages
	api.Get("/my/issues", append(authenticated, h.Issue.MyIssues)...)
	api.Get("/profile", append(authenticated, h.Profile.Get)...)
	api.Put("/profile", append(authenticated, h.Profile.Update)...)
	api.Post("/profile", append(authenticated, h.Profile.Update)...)
}
