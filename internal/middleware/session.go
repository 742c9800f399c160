package middleware

import (
	"net/http"
	"strings"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/services"
	"spacia-portal/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionMiddleware attaches the caller's session, if any, to the context.
// The session id is read from the cookie, or from an "Authorization: Session <id>" header.
func SessionMiddleware(users *services.UserService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		if id == "" {
			if parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2); len(parts) == 2 && parts[0] == "Session" {
				id = strings.TrimSpace(parts[1])
			}
		}
		if id != "" {
			if sess, err := users.Session(c.Request.Context(), id); err == nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

// RequireSession rejects anonymous callers and tells the client where to log in.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"message": apperrors.MsgLoginRequired,
					"code":    apperrors.ErrCodeUnauthorized,
				},
				"redirect": "/login",
				"from":     c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

// CurrentSession returns the caller's session or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
