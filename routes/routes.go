package routes

import (
	"net/http"
	"time"

	"uprocket/handlers"
	"uprocket/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/login", hb.LoginHandler)
	r.GET("/api/logout", hb.LogoutHandler)
}

// RegisterUserRoutes registers the authenticated user's profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/me")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Verifier, false))
		api.GET("", hb.GetMeHandler)
		api.PUT("", hb.UpdateMeHandler)
		api.GET("/bookings", hb.GetMyBookingsHandler)
	}
}

// RegisterContractorRoutes registers the public contractor directory.
func RegisterContractorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contractor")
	{
		api.GET("", hb.ListContractorsHandler)
		api.GET("/:id", hb.GetContractorHandler)
	}
}

// RegisterSchedulingRoutes registers session minting plus the contractor's
// own configuration and calendar endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Session minting is public: anonymous visitors browse availability
	// before they ever log in.
	r.POST("/api/session", hb.CreateSessionHandler)

	protected := r.Group("/api")
	{
		protected.Use(middleware.SessionAuthMiddleware(hb.Verifier, false))
		protected.GET("/config", hb.GetConfigHandler)
		protected.PUT("/config", hb.SetConfigHandler)
		protected.POST("/config", hb.SetConfigHandler)
		protected.GET("/calendars", hb.GetCalendarsHandler)
	}
}

// RegisterBookingRoutes sets up the booking attempt plus the post-payment
// confirm/cancel endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// The booking attempt allows anonymous callers; it answers with a
	// login redirect instead of rejecting them.
	r.POST("/api/booking", middleware.SessionAuthMiddleware(hb.Verifier, true), hb.ConfirmTimeslotHandler)

	protected := r.Group("/api/booking")
	{
		protected.Use(middleware.SessionAuthMiddleware(hb.Verifier, false))
		protected.POST("/:bookingId/confirm", hb.ConfirmBookingHandler)
		protected.POST("/:bookingId/cancel", hb.CancelBookingHandler)
	}
}

// RegisterCheckoutRoutes registers payment for held pre-bookings.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/checkout", middleware.SessionAuthMiddleware(hb.Verifier, false), hb.CreateCheckoutHandler)
}

// RegisterStorageRoutes registers media upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/storage/profile-picture", middleware.SessionAuthMiddleware(hb.Verifier, false), hb.UploadProfilePictureHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm UpRocket"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterContractorRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
