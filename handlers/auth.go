// Package handlers exposes the gateway's browser-facing API: thin relays to
// the backend services plus the session, cart and checkout state the views
// render from. Response shapes follow the views' needs, not the backends'.
package handlers

import (
	"net/http"

	"tomato-client/models"
	"tomato-client/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	session *session.Store
}

func NewAuthHandler(s *session.Store) *AuthHandler {
	return &AuthHandler{session: s}
}

type loginRequest struct {
	Code string `json:"code" binding:"required"`
}

// Login exchanges a Google auth code for a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.session.Login(req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Problem while login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"redirect": redirectFor(&user),
	})
}

// Me reports the current session. Always 200; the views use it to decide
// between the login screen and the role home.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":            h.session.User(),
		"isAuthenticated": h.session.IsAuthenticated(),
		"isLoading":       h.session.IsLoading(),
	})
}

type selectRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required,oneof=customer seller rider"`
}

// SelectRole assigns the one-time role choice.
func (h *AuthHandler) SelectRole(c *gin.Context) {
	var req selectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.session.AssignRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error updating role. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"redirect": redirectFor(&user),
	})
}

// Logout tears the session down.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.session.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/login"})
}

// redirectFor picks the post-login destination: role selection for fresh
// accounts, the shared role-keyed home for everyone else.
func redirectFor(user *models.User) string {
	if !user.HasRole() {
		return "/select-role"
	}
	return "/"
}
