package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/RichardSen18/boardgame-store/internal/config"
	"github.com/RichardSen18/boardgame-store/internal/handler"
	"github.com/RichardSen18/boardgame-store/internal/middleware"
	"github.com/RichardSen18/boardgame-store/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the /v1/me endpoint.
// Unauthenticated operations live under /v1/auth; /v1/me requires a valid
// access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleClient, model.RoleSeller, model.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the games catalog. Reads are public and sit
// behind the Redis response cache; writes require an ADMIN token.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/games", h.ListGames, cache)
	e.GET("/v1/games/:id", h.GetGame, cache)

	admin := e.Group("/v1/games")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.CreateGame)
	admin.PUT("/:id", h.UpdateGame)
	admin.POST("/:id/restock", h.Restock)
	admin.DELETE("/:id", h.DeleteGame)
}

// RegisterSales registers the sales endpoints. Recording and reversing sales
// is staff work (SELLER or ADMIN); clients may still read their own purchase
// history through GET /v1/users/:id/sales.
func RegisterSales(e *echo.Echo, h *handler.SaleHandler, jwtSecret string) {
	staff := e.Group("/v1/sales")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(model.RoleSeller, model.RoleAdmin))
	staff.POST("", h.CreateSale)
	staff.GET("/:id", h.GetSale)
	staff.DELETE("/:id", h.DeleteSale)

	history := e.Group("/v1/users/:id/sales")
	history.Use(middleware.JWTAuth(jwtSecret))
	history.Use(middleware.RequireRole(model.RoleClient, model.RoleSeller, model.RoleAdmin))
	history.GET("", h.ListBuyerSales)
}

// RegisterSessions registers the play-session lifecycle and participant
// roster. All session endpoints require staff credentials.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, jwtSecret string) {
	staff := e.Group("/v1/sessions")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(model.RoleSeller, model.RoleAdmin))
	staff.POST("", h.StartSession)
	staff.GET("", h.ListSessions)
	staff.GET("/:id", h.GetSession)
	staff.POST("/:id/finalize", h.FinalizeSession)
	staff.DELETE("/:id", h.DeleteSession)
	staff.POST("/:id/participants", h.RegisterParticipant)
	staff.GET("/:id/participants", h.ListParticipants)
}

// RegisterUsers registers the admin-only user management endpoints.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	admin := e.Group("/v1/users")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.CreateUser)
	admin.GET("", h.ListUsers)
	admin.GET("/:id", h.GetUser)
	admin.PUT("/:id", h.UpdateUser)
	admin.DELETE("/:id", h.DeleteUser)
}
