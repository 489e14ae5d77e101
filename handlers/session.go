// File: handlers/session.go
package handlers

import (
	"errors"
	"net/http"

	"uprocket/models"
	"uprocket/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler mints scheduling sessions for booking attempts.
type SessionHandler struct {
	Issuer scheduling.SessionIssuer
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(issuer scheduling.SessionIssuer) *SessionHandler {
	return &SessionHandler{Issuer: issuer}
}

// CreateSessionHandler resolves the contractor's configuration for the
// requested duration and returns the provider's session envelope verbatim.
func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing session data"})
		return
	}

	envelope, err := h.Issuer.CreateSession(c.Request.Context(), req.ContractorID, req.Duration)
	if err != nil {
		var incomplete scheduling.IncompleteProfileError
		switch {
		case errors.Is(err, scheduling.ErrInvalidContractor):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid contractor id"})
		case errors.Is(err, scheduling.ErrNotAcceptingWork):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Contractor is not looking for work"})
		case errors.As(err, &incomplete):
			c.JSON(http.StatusBadRequest, gin.H{"message": incomplete.Error()})
		default:
			logger.Error("Session creation failed", zap.String("contractorId", req.ContractorID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid session data"})
		}
		return
	}

	c.JSON(http.StatusOK, envelope)
}
