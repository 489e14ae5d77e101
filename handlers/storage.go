// File: handlers/storage.go
package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"uprocket/middleware"
	"uprocket/services/directory"
	"uprocket/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const profilePictureFolder = "uprocket/profile-pictures"

// StorageHandler handles profile picture uploads.
type StorageHandler struct {
	StorageSvc storage.StorageService
	Directory  directory.DirectoryService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService, dir directory.DirectoryService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc, Directory: dir}
}

// UploadProfilePictureHandler stores the uploaded image and points the
// user's picture field at its public URL.
func (h *StorageHandler) UploadProfilePictureHandler(c *gin.Context) {
	logger := getLogger(c)
	uid := middleware.CurrentUID(c)

	user, err := h.Directory.GetUser(c.Request.Context(), uid)
	if err != nil || user == nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File not provided"})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		logger.Error("Failed to save uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, profilePictureFolder)
	if err != nil {
		logger.Error("Failed to upload profile picture", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload file"})
		return
	}

	downloadURL, err := h.StorageSvc.GetDownloadURL(c, publicID, 0)
	if err != nil {
		logger.Error("Failed to construct download URL", zap.String("publicId", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to construct download URL"})
		return
	}

	user.Picture = downloadURL
	if err := h.Directory.SaveUser(c.Request.Context(), uid, *user); err != nil {
		logger.Error("Failed to store picture URL", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Profile picture updated",
		"downloadURL": downloadURL,
	})
}
