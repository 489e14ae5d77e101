// File: handlers/auth.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"uprocket/config"
	"uprocket/services/directory"
	"uprocket/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMinter is the slice of the Firebase Auth client the login flow
// needs: exchange a verified ID token for a long-lived session cookie.
type SessionMinter interface {
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

// AuthHandler owns login and logout.
type AuthHandler struct {
	Auth      SessionMinter
	Directory directory.DirectoryService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(minter SessionMinter, dir directory.DirectoryService) *AuthHandler {
	return &AuthHandler{Auth: minter, Directory: dir}
}

// LoginHandler exchanges a Firebase ID token for a signed session cookie and
// creates the user's directory record on first login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var body struct {
		IDToken string `json:"idToken"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID token is required."})
		return
	}

	expiresIn := time.Duration(config.AppConfig.AuthCookieTTL) * time.Second
	cookie, err := h.Auth.SessionCookie(c.Request.Context(), body.IDToken, expiresIn)
	if err != nil {
		logger.Debug("Failed to mint session cookie", zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"message": "Unable to log you in"})
		return
	}

	token, err := h.Auth.VerifySessionCookie(c.Request.Context(), cookie)
	if err != nil {
		logger.Debug("Fresh session cookie failed verification", zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"message": "Unable to log you in"})
		return
	}

	user, err := h.Directory.EnsureUser(c.Request.Context(), token.UID,
		claimString(token, "name"), claimString(token, "email"), claimString(token, "picture"))
	if err != nil {
		logger.Error("Failed to ensure user record", zap.String("uid", token.UID), zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"message": "Unable to log you in"})
		return
	}

	c.SetCookie(utils.AuthCookieName, cookie, config.AppConfig.AuthCookieTTL, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Success", "userData": user})
}

// LogoutHandler clears the session cookie and sends the user home.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", config.IsProduction(), true)
	c.Redirect(http.StatusFound, "/")
}

// claimString reads a string claim off the verified token.
func claimString(token *auth.Token, key string) string {
	if v, ok := token.Claims[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
