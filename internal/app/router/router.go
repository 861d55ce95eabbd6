// Package router assembles the gin engine and the REST surface under /api.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "credit_backend/internal/feature/auth/transport/handler"
	profilehandler "credit_backend/internal/feature/creditprofile/transport/handler"
	disputehandler "credit_backend/internal/feature/dispute/transport/handler"
	letterhandler "credit_backend/internal/feature/letter/transport/handler"
	platformhandler "credit_backend/internal/platform/http/handler"
	"credit_backend/internal/platform/http/middleware"
	jwtmw "credit_backend/internal/platform/jwt"
	"credit_backend/internal/shared/identity"
)

type Handlers struct {
	Health   *platformhandler.HealthHandler
	Auth     *authhandler.AuthHandler
	Profiles *profilehandler.CreditProfileHandler
	Disputes *disputehandler.DisputeHandler
	Letters  *letterhandler.LetterHandler
}

type Options struct {
	JWTSecret   string
	FrontendURL string
	Log         *zap.Logger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Log),
		middleware.Recovery(opts.Log),
		cors.New(cors.Config{
			AllowOrigins:     []string{opts.FrontendURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)
	api.HEAD("/health", h.Health.Health)

	authed := jwtmw.AuthRequired(opts.JWTSecret)
	adminOnly := jwtmw.RequireRole(identity.RoleAdmin)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/regenerate-token", authed, h.Auth.RegenerateToken)
		auth.POST("/logout", authed, h.Auth.Logout)
		auth.GET("/profile", authed, h.Auth.Profile)
	}

	profiles := api.Group("/credit-profile", authed)
	{
		profiles.GET("/me", h.Profiles.Me)
		profiles.POST("/refresh", h.Profiles.Refresh)
		profiles.GET("/admin/all", adminOnly, h.Profiles.ListAll)
		profiles.GET("/:userId", adminOnly, h.Profiles.ByUser)
	}

	disputes := api.Group("/disputes", authed)
	{
		disputes.POST("/create", h.Disputes.Create)
		disputes.GET("/history", h.Disputes.History)
		// admin routes precede /:id so the literal segments win
		disputes.GET("/admin/all", adminOnly, h.Disputes.ListAll)
		disputes.GET("/admin/stats", adminOnly, h.Disputes.Stats)
		disputes.GET("/:id", h.Disputes.Get)
		disputes.PUT("/:id/submit", h.Disputes.Submit)
		disputes.PUT("/:id/status", adminOnly, h.Disputes.UpdateStatus)
		disputes.POST("/:id/letter", h.Disputes.GenerateLetter)
		disputes.DELETE("/:id", h.Disputes.Delete)
	}

	api.POST("/ai/generate-letter", authed, h.Letters.Generate)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "not_found", "message": "Route not found"})
	})

	return r
}
