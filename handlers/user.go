// File: handlers/user.go
package handlers

import (
	"net/http"

	recordsRepo "uprocket/database/repository/records"
	"uprocket/middleware"
	"uprocket/models"
	"uprocket/services/directory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler owns the authenticated user's own profile endpoints.
type UserHandler struct {
	Directory directory.DirectoryService
	Records   recordsRepo.RecordRepository
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(dir directory.DirectoryService, records recordsRepo.RecordRepository) *UserHandler {
	return &UserHandler{Directory: dir, Records: records}
}

// GetMeHandler returns the authenticated user's full record.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	user, err := h.Directory.GetUser(c.Request.Context(), uid)
	if err != nil {
		logger.Error("Failed to get user profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMeHandler writes the authenticated user's full record. Last writer
// wins; there is no versioning.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing user data"})
		return
	}

	if err := h.Directory.SaveUser(c.Request.Context(), uid, user); err != nil {
		logger.Error("Failed to update profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	user.UID = uid
	c.JSON(http.StatusOK, user)
}

// GetMyBookingsHandler lists the user's booking activity, newest first.
func (h *UserHandler) GetMyBookingsHandler(c *gin.Context) {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	records, err := h.Records.GetByUserUID(c.Request.Context(), uid)
	if err != nil {
		logger.Error("Failed to list booking records", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve bookings"})
		return
	}

	c.JSON(http.StatusOK, records)
}
