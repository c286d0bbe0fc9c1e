package upstream

import (
	"net/http"

	"tomato-client/models"
)

// AuthClient talks to the auth service.
type AuthClient struct {
	*Client
}

func NewAuthClient(baseURL string, token TokenFunc) *AuthClient {
	return &AuthClient{New(baseURL, token)}
}

// LoginResult is the POST /api/auth/login response.
type LoginResult struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// Me resolves the session for the current bearer token.
func (a *AuthClient) Me() (models.User, error) {
	var user models.User
	err := a.Get("/api/auth/me", &user)
	return user, err
}

// Login exchanges a Google auth code for a session.
func (a *AuthClient) Login(code string) (LoginResult, error) {
	var res LoginResult
	err := a.Send(http.MethodPost, "/api/auth/login", map[string]string{"code": code}, &res)
	return res, err
}

// AddRole assigns a role post-signup. The backend re-issues the token with the
// role claim baked in.
func (a *AuthClient) AddRole(role models.UserRole) (LoginResult, error) {
	var res LoginResult
	err := a.Send(http.MethodPut, "/api/auth/add/role", map[string]models.UserRole{"role": role}, &res)
	return res, err
}
