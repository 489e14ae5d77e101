// File: handlers/bundle.go
package handlers

import (
	"uprocket/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Verifier middleware.SessionVerifier

	// Auth endpoints
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Profile endpoints
	GetMeHandler         gin.HandlerFunc
	UpdateMeHandler      gin.HandlerFunc
	GetMyBookingsHandler gin.HandlerFunc

	// Contractor directory endpoints
	ListContractorsHandler gin.HandlerFunc
	GetContractorHandler   gin.HandlerFunc

	// Scheduling endpoints
	CreateSessionHandler gin.HandlerFunc
	GetConfigHandler     gin.HandlerFunc
	SetConfigHandler     gin.HandlerFunc
	GetCalendarsHandler  gin.HandlerFunc

	// Booking endpoints
	ConfirmTimeslotHandler gin.HandlerFunc
	ConfirmBookingHandler  gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc

	// Checkout endpoints
	CreateCheckoutHandler gin.HandlerFunc

	// Storage endpoints
	UploadProfilePictureHandler gin.HandlerFunc
}
