package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/shashatv/vod-backend/internal/auth"
	"github.com/shashatv/vod-backend/internal/config"
	"github.com/shashatv/vod-backend/internal/handler"
	"github.com/shashatv/vod-backend/internal/middleware"
	"github.com/shashatv/vod-backend/internal/utils"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	Admin      *handler.AdminHandler
	Categories *handler.CategoryHandler
	Videos     *handler.VideoHandler
	Series     *handler.SeriesHandler
	Search     *handler.SearchHandler
	Complaints *handler.ComplaintHandler
	Stats      *handler.StatsHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity routes. Registration and login live
// under /v1/auth and /v1/admin/auth without middleware; the session-bound
// user endpoints live under /v1 behind SessionAuth.
func RegisterAuth(e *echo.Echo, h Handlers, cfg config.Config, registry *auth.SessionRegistry) {
	g := e.Group("/v1/auth")
	g.POST("/send-verification-code", h.Auth.SendVerificationCode)
	g.POST("/verify-email", h.Auth.VerifyEmail)
	g.POST("/login", h.Auth.Login)

	e.POST("/v1/admin/register", h.Admin.Register)
	e.POST("/v1/admin/login", h.Admin.Login)

	// Session-bound user endpoints. SessionAuth checks both the JWT and the
	// registry, so a superseded or revoked token is rejected here.
	user := e.Group("/v1")
	user.Use(middleware.SessionAuth(cfg.JWTSecret, registry))
	user.Use(middleware.RequireRole(utils.RoleUser, utils.RoleAdmin))
	user.POST("/auth/logout", h.Auth.Logout)
	user.GET("/profile", h.Auth.Profile)
	user.PUT("/profile/push-token", h.Auth.UpdatePushToken)
	user.POST("/videos/:id/view", h.Videos.View)
	user.POST("/videos/:id/favorite", h.Videos.Favorite)
	user.POST("/complaints", h.Complaints.Create)
}

// RegisterPublic registers the unauthenticated browse endpoints. Each route
// sits behind the Redis response cache and the token-bucket limiter; both
// degrade to pass-through when Redis is unavailable.
func RegisterPublic(e *echo.Echo, h Handlers, rdb *redis.Client) {
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	pub := e.Group("/v1",
		middleware.NewTokenBucket(rlCfg, rdb),
		middleware.NewRedisCache(cacheCfg, rdb))

	pub.GET("/categories", h.Categories.Roots)
	pub.GET("/categories/leaves", h.Categories.Leaves)
	pub.GET("/categories/tree", h.Categories.Tree)
	pub.GET("/categories/:id", h.Categories.Get)
	pub.GET("/categories/:id/subcategories", h.Categories.Subcategories)

	pub.GET("/videos", h.Videos.List)
	pub.GET("/videos/latest", h.Videos.Latest)
	pub.GET("/videos/:id", h.Videos.Get)
	pub.GET("/videos/:id/suggestions", h.Videos.Suggestions)

	pub.GET("/series", h.Series.List)
	pub.GET("/series/:id", h.Series.Get)
	pub.GET("/catalog", h.Series.Catalog)

	pub.GET("/search", h.Search.Search)
}

// RegisterAdmin registers the back-office routes. Everything here requires
// an ADMIN token.
func RegisterAdmin(e *echo.Echo, h Handlers, cfg config.Config, registry *auth.SessionRegistry) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.SessionAuth(cfg.JWTSecret, registry))
	admin.Use(middleware.RequireRole(utils.RoleAdmin))

	admin.GET("/profile", h.Admin.Profile)

	admin.POST("/categories", h.Categories.Create)
	admin.DELETE("/categories/:id", h.Categories.Delete)

	admin.POST("/videos", h.Videos.Create)
	admin.POST("/series", h.Series.Create)

	admin.GET("/complaints", h.Complaints.ListRecent)
	admin.GET("/statistics", h.Stats.Report)
}
