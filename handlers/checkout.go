// File: handlers/checkout.go
package handlers

import (
	"net/http"

	"uprocket/middleware"
	"uprocket/services/booking"
	"uprocket/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler opens payment for the user's held pre-booking.
type CheckoutHandler struct {
	Pending  booking.PendingBookingStore
	Checkout payment.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler instance.
func NewCheckoutHandler(pending booking.PendingBookingStore, checkout payment.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Pending: pending, Checkout: checkout}
}

// CreateCheckoutHandler prices the user's pending booking and returns a
// payment intent. There is nothing to pay for without a held pre-booking.
func (h *CheckoutHandler) CreateCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	pending, err := h.Pending.Get(c.Request.Context(), uid)
	if err != nil {
		logger.Error("Failed to load pending booking", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Checkout failed"})
		return
	}
	if pending == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No pending booking"})
		return
	}

	intent, err := h.Checkout.CreatePaymentIntent(c.Request.Context(), *pending)
	if err != nil {
		logger.Error("Failed to open payment intent",
			zap.String("bookingId", pending.BookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking": pending,
		"payment": intent,
	})
}
