// File: handlers/booking.go
package handlers

import (
	"net/http"
	"time"

	recordsRepo "uprocket/database/repository/records"
	"uprocket/middleware"
	"uprocket/models"
	"uprocket/services/booking"
	"uprocket/services/directory"
	"uprocket/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler owns the booking attempt plus the confirm/cancel endpoints.
type BookingHandler struct {
	Directory    directory.DirectoryService
	Orchestrator booking.Orchestrator
	Pending      booking.PendingBookingStore
	Nylas        scheduling.NylasAPI
	Records      recordsRepo.RecordRepository
	Logger       *zap.Logger
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(dir directory.DirectoryService, orch booking.Orchestrator, pending booking.PendingBookingStore, nylas scheduling.NylasAPI, records recordsRepo.RecordRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Directory:    dir,
		Orchestrator: orch,
		Pending:      pending,
		Nylas:        nylas,
		Records:      records,
		Logger:       logger,
	}
}

// ConfirmTimeslotHandler runs one booking attempt. Anonymous requests get a
// login redirect outcome; the scheduler bridge is only touched with an
// authenticated identity.
func (h *BookingHandler) ConfirmTimeslotHandler(c *gin.Context) {
	var req booking.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing booking data"})
		return
	}

	var user *models.User
	if uid := middleware.CurrentUID(c); uid != "" {
		var err error
		user, err = h.Directory.GetUser(c.Request.Context(), uid)
		if err != nil {
			h.Logger.Error("Failed to resolve acting user", zap.String("uid", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Booking failed"})
			return
		}
	}

	outcome, err := h.Orchestrator.ConfirmTimeslot(c.Request.Context(), user, req)
	if err != nil {
		h.Logger.Error("Booking attempt failed", zap.String("contractorId", req.ContractorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Booking failed"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// ConfirmBookingHandler finalizes a pre-booked event after payment.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.bookingAction(c, "confirm", "confirmed")
}

// CancelBookingHandler discards a pre-booked event.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.bookingAction(c, "cancel", "cancelled")
}

// bookingAction re-verifies contractor eligibility, then forwards the
// action to the provider keyed by booking id. The provider response passes
// through verbatim; anything thrown inside the forwarding block collapses
// to a fixed 400.
func (h *BookingHandler) bookingAction(c *gin.Context, action, recordAction string) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	var body struct {
		ContractorID string `json:"contractorId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ContractorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide contractor id"})
		return
	}

	contractor, err := h.Directory.GetUser(c.Request.Context(), body.ContractorID)
	if err != nil {
		h.Logger.Error("Failed to resolve contractor", zap.String("contractorId", body.ContractorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid session data"})
		return
	}
	if contractor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid contractor id"})
		return
	}
	if !contractor.LookingForWork {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Contractor is not looking for work"})
		return
	}
	if contractor.ConfigID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Contractor has not completed their profile"})
		return
	}

	envelope, err := h.Nylas.BookingAction(c.Request.Context(), contractor.Email, bookingID, action)
	if err != nil {
		h.Logger.Error("Booking action failed", zap.String("bookingId", bookingID),
			zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid session data"})
		return
	}

	h.finalizePending(c, bookingID, body.ContractorID, recordAction)
	c.JSON(http.StatusOK, envelope)
}

// finalizePending clears the user's held pre-booking and writes the
// activity row. Best-effort: the provider already holds the truth.
func (h *BookingHandler) finalizePending(c *gin.Context, bookingID, contractorID, action string) {
	uid := middleware.CurrentUID(c)
	ctx := c.Request.Context()

	record := models.BookingRecord{
		BookingID:    bookingID,
		UserUID:      uid,
		ContractorID: contractorID,
		Action:       action,
		CreatedAt:    time.Now(),
	}

	if pending, err := h.Pending.Get(ctx, uid); err == nil && pending != nil && pending.BookingID == bookingID {
		record.Duration = pending.Duration
		record.StartTime = pending.Timeslot.StartTime
		record.EndTime = pending.Timeslot.EndTime
		if err := h.Pending.Delete(ctx, uid); err != nil {
			h.Logger.Warn("Failed to clear pending booking", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}

	if h.Records != nil {
		if _, err := h.Records.Create(ctx, record); err != nil {
			h.Logger.Warn("Failed to record booking activity", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
}
