package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotly/handlers"
	"slotly/middleware"
	"slotly/utils"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, authHandler *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/me", authHandler.Me)
		protected.POST("/switch-role", authHandler.SwitchRole)
		protected.POST("/logout", authHandler.Logout)
		protected.POST("/impersonation/stop", authHandler.StopImpersonation)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("", bookingHandler.CreateBooking)
		bookingGroup.GET("", bookingHandler.ListBookings)
		bookingGroup.GET("/:id", bookingHandler.GetBooking)
		bookingGroup.PATCH("/:id/status", bookingHandler.UpdateStatus)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, adminHandler *handlers.AdminHandler) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
		adminGroup.GET("/ping", adminHandler.Ping)
		adminGroup.POST("/users/:id/roles/grant", adminHandler.GrantRole)
		adminGroup.POST("/users/:id/roles/revoke", adminHandler.RevokeRole)
		adminGroup.POST("/users/:id/impersonate", adminHandler.Impersonate)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, bookingHandler *handlers.BookingHandler, adminHandler *handlers.AdminHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, authHandler)
	RegisterBookingRoutes(r, bookingHandler)
	RegisterAdminRoutes(r, adminHandler)
}
