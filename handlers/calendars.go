// File: handlers/calendars.go
package handlers

import (
	"net/http"

	"uprocket/middleware"
	"uprocket/services/directory"
	"uprocket/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarsHandler lists the authenticated contractor's provider calendars.
type CalendarsHandler struct {
	Directory directory.DirectoryService
	Nylas     scheduling.NylasAPI
}

// NewCalendarsHandler creates a new CalendarsHandler instance.
func NewCalendarsHandler(dir directory.DirectoryService, nylas scheduling.NylasAPI) *CalendarsHandler {
	return &CalendarsHandler{Directory: dir, Nylas: nylas}
}

// GetCalendarsHandler returns the calendars behind the user's grant.
func (h *CalendarsHandler) GetCalendarsHandler(c *gin.Context) {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	user, err := h.Directory.GetUser(c.Request.Context(), uid)
	if err != nil || user == nil || user.GrantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	envelope, err := h.Nylas.ListCalendars(c.Request.Context(), user.GrantID)
	if err != nil {
		logger.Error("Failed to list calendars", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unknown error"})
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
