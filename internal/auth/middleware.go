package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	PasswordHeader = "x-admin-password"
	adminKey       = "admin"
)

// HeaderMiddleware gates the admin API on the shared-secret request header.
func HeaderMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticator.Authenticate(c.GetHeader(PasswordHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// SessionMiddleware marks requests that carry a valid admin session.
func SessionMiddleware(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(adminKey, sessions.Authenticated(c.Request))
		c.Next()
	}
}

// RequireSession sends unauthenticated admin UI requests back to the
// password form.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.Redirect(http.StatusSeeOther, "/admin")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(adminKey)
}
