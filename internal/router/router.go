package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/handler"
	"github.com/thebiblebus/biblebus-backend/internal/middleware"
	"github.com/thebiblebus/biblebus-backend/internal/response"
	"github.com/thebiblebus/biblebus-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Group      *handler.GroupHandler
	AdminGroup *handler.AdminGroupHandler
	Message    *handler.MessageHandler
	Donation   *handler.DonationHandler
	Trip       *handler.TripHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/groups/current", handlers.Group.CurrentGroup)
		// Donors signed in when giving get linked to their account.
		publicAPI.POST("/donations", middleware.OptionalJWT(authService), handlers.Donation.CreateDonation)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Member Group (JWT + Active Session) ────────────────────────
	memberAPI := router.Group("/api/v1/member")
	memberAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
	)
	{
		memberAPI.GET("/group", handlers.Group.MyGroup)
		memberAPI.POST("/group/join", handlers.Group.Join)
		memberAPI.GET("/messages", handlers.Message.ListMyMessages)
		memberAPI.GET("/trips", handlers.Trip.ListTrips)
	}

	// ─── 3. WebSocket Group (Query Token Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/admin/groups/lifecycle", handlers.WS.LifecycleStream)
	}

	// ─── 4. Admin Group (JWT + Admin Flag) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
		middleware.RequireAdmin(),
	)
	{
		// Group lifecycle management
		adminAPI.GET("/groups", handlers.AdminGroup.ListGroups)
		adminAPI.POST("/groups", handlers.AdminGroup.CreateGroup)
		adminAPI.GET("/groups/:id", handlers.AdminGroup.GetGroup)
		adminAPI.GET("/groups/:id/members", handlers.AdminGroup.GetGroupMembers)
		adminAPI.POST("/groups/:id/activate", handlers.AdminGroup.ActivateGroup)
		adminAPI.POST("/groups/lifecycle/run", handlers.AdminGroup.RunLifecycle)
		adminAPI.POST("/groups/normalize", handlers.AdminGroup.NormalizeGroups)
		adminAPI.POST("/users/:id/assign", handlers.AdminGroup.AssignUser)
		adminAPI.GET("/users", handlers.Auth.ListUsers)

		// Messaging
		adminAPI.GET("/messages", handlers.Message.ListMessages)
		adminAPI.POST("/messages", handlers.Message.CreateMessage)

		// Donations
		adminAPI.GET("/donations", handlers.Donation.ListDonations)

		// Trips
		adminAPI.GET("/trips", handlers.Trip.ListTrips)
		adminAPI.POST("/trips", handlers.Trip.CreateTrip)
		adminAPI.PUT("/trips/:id", handlers.Trip.UpdateTrip)
		adminAPI.DELETE("/trips/:id", handlers.Trip.DeleteTrip)
	}

	return router
}
