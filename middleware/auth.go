package middleware

import (
	"context"
	"net/http"

	"uprocket/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by SessionAuthMiddleware.
const (
	CtxUserUID  = "userUID"
	CtxIdentity = "identity"
)

// SessionVerifier checks the signed auth cookie. Satisfied by the Firebase
// Auth client; faked in handler tests.
type SessionVerifier interface {
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

// SessionAuthMiddleware validates the Firebase session cookie on every
// identity-dependent endpoint. With optional set, requests without a valid
// cookie pass through anonymously instead of being rejected; handlers that
// allow anonymous access (the booking attempt, which redirects to login)
// use that mode.
func SessionAuthMiddleware(verifier SessionVerifier, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(utils.AuthCookieName)
		if err != nil || cookie == "" {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
			return
		}

		token, err := verifier.VerifySessionCookieAndCheckRevoked(c.Request.Context(), cookie)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(CtxUserUID, token.UID)
		c.Set(CtxIdentity, token)
		c.Next()
	}
}

// CurrentUID returns the authenticated user's UID, or "" when the request
// is anonymous.
func CurrentUID(c *gin.Context) string {
	if v, ok := c.Get(CtxUserUID); ok {
		if uid, ok := v.(string); ok {
			return uid
		}
	}
	return ""
}

// CurrentIdentity returns the verified token, or nil for anonymous requests.
func CurrentIdentity(c *gin.Context) *auth.Token {
	if v, ok := c.Get(CtxIdentity); ok {
		if token, ok := v.(*auth.Token); ok {
			return token
		}
	}
	return nil
}
