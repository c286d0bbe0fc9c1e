package middleware

import (
	"net/http"

	"tomato-client/models"
	"tomato-client/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired gates a route group on the live session. Unauthenticated
// callers get a 401 with the login redirect; callers arriving before the
// startup identity resolution has finished get told to retry.
func AuthRequired(s *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.IsLoading() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session is still loading, try again"})
			c.Abort()
			return
		}
		if !s.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login to continue", "redirect": "/login"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired enforces that the session user holds one of the allowed roles.
// A user with no role yet is parked on role selection; everything else is
// locked until they pick.
func RoleRequired(s *session.Store, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.User()
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login to continue", "redirect": "/login"})
			c.Abort()
			return
		}
		if user.Role == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Select a role to continue", "redirect": "/select-role"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
		c.Abort()
	}
}

func rolesString(roles []models.UserRole) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}

// CORS allows the browser app origin through. The gateway fronts a single
// page app, so the permissive form is fine.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
