// File: handlers/schedulerconfig.go
package handlers

import (
	"net/http"

	"uprocket/middleware"
	"uprocket/models"
	"uprocket/services/directory"
	"uprocket/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulerConfigHandler owns the contractor's own scheduling configuration.
type SchedulerConfigHandler struct {
	Directory directory.DirectoryService
	Config    scheduling.ConfigService
}

// NewSchedulerConfigHandler creates a new SchedulerConfigHandler instance.
func NewSchedulerConfigHandler(dir directory.DirectoryService, cfg scheduling.ConfigService) *SchedulerConfigHandler {
	return &SchedulerConfigHandler{Directory: dir, Config: cfg}
}

// requireOwner resolves the authenticated user's record and checks the grant
// is connected. A missing grant means the contractor never linked their
// calendar, so no configuration work is possible.
func (h *SchedulerConfigHandler) requireOwner(c *gin.Context) *models.User {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	user, err := h.Directory.GetUser(c.Request.Context(), uid)
	if err != nil {
		logger.Error("Failed to resolve user", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return nil
	}
	if user == nil || user.GrantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return nil
	}
	return user
}

// GetConfigHandler returns the contractor's base configuration.
func (h *SchedulerConfigHandler) GetConfigHandler(c *gin.Context) {
	user := h.requireOwner(c)
	if user == nil {
		return
	}

	envelope, err := h.Config.GetConfig(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Configuration not created"})
		return
	}
	if envelope.HasError() {
		c.JSON(http.StatusInternalServerError, envelope)
		return
	}
	if !envelope.HasData() {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unknown error"})
		return
	}

	c.Data(http.StatusOK, "application/json", envelope.Data)
}

// SetConfigHandler creates or updates one provider configuration per
// supported duration and stores the returned ids on the user record.
func (h *SchedulerConfigHandler) SetConfigHandler(c *gin.Context) {
	logger := getLogger(c)

	user := h.requireOwner(c)
	if user == nil {
		return
	}

	var req models.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	_, envelope, err := h.Config.SetConfig(c.Request.Context(), user, req)
	if err != nil {
		logger.Error("Failed to save scheduling configuration", zap.String("uid", user.UID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}
	if envelope.HasError() {
		c.JSON(http.StatusInternalServerError, envelope)
		return
	}

	c.Data(http.StatusOK, "application/json", envelope.Data)
}
