// File: handlers/contractor.go
package handlers

import (
	"net/http"

	"uprocket/services/directory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContractorHandler owns the public contractor directory endpoints.
type ContractorHandler struct {
	Directory directory.DirectoryService
}

// NewContractorHandler creates a new ContractorHandler instance.
func NewContractorHandler(dir directory.DirectoryService) *ContractorHandler {
	return &ContractorHandler{Directory: dir}
}

// ListContractorsHandler returns every contractor accepting work.
func (h *ContractorHandler) ListContractorsHandler(c *gin.Context) {
	logger := getLogger(c)

	contractors, err := h.Directory.ListContractors(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list contractors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve contractors"})
		return
	}

	c.JSON(http.StatusOK, contractors)
}

// GetContractorHandler returns one contractor, 404 when the record is
// absent or the user is not accepting work.
func (h *ContractorHandler) GetContractorHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing contractor ID"})
		return
	}

	contractor, err := h.Directory.GetContractorByUID(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to get contractor", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve contractor"})
		return
	}
	if contractor == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Contractor not found"})
		return
	}

	c.JSON(http.StatusOK, contractor)
}
