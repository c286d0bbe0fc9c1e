// Package session holds the authenticated identity for the running client:
// the user, the auth flag, the bearer token, and the realtime channel whose
// lifetime is tied to that token. Login, logout and role assignment are the
// only writers; everyone else reads through the accessors.
package session

import (
	"log"
	"sync"
	"time"

	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/realtime"
	"tomato-client/storage"
	"tomato-client/upstream"

	"github.com/golang-jwt/jwt/v5"
)

// ChannelFactory builds a realtime channel. Injected so tests can point the
// session at a local websocket server. The token goes to Connect, not here.
type ChannelFactory func() *realtime.Channel

type Store struct {
	mu        sync.RWMutex
	user      *models.User
	isAuth    bool
	isLoading bool
	token     string

	db      *storage.Store
	hub     *notify.Hub
	auth    *upstream.AuthClient
	factory ChannelFactory
	channel *realtime.Channel

	onLogin  []func()
	onLogout []func()
}

// NewStore loads the persisted token (if any) and starts in the loading
// state, mirroring the app-mount identity resolution.
func NewStore(db *storage.Store, hub *notify.Hub) *Store {
	s := &Store{db: db, hub: hub, isLoading: true}
	if db != nil {
		s.token = db.Token()
	}
	return s
}

// SetAuthClient wires the auth service client. Done after construction
// because the client itself reads the token through this store.
func (s *Store) SetAuthClient(auth *upstream.AuthClient) { s.auth = auth }

// SetChannelFactory wires the realtime channel builder.
func (s *Store) SetChannelFactory(f ChannelFactory) { s.factory = f }

// OnLogin registers a hook run after identity is established (cart fetch).
func (s *Store) OnLogin(fn func()) { s.onLogin = append(s.onLogin, fn) }

// OnLogout registers a cache-reset hook run on logout. Every state mirror
// that depends on the session registers here so no stale data leaks across
// sessions.
func (s *Store) OnLogout(fn func()) { s.onLogout = append(s.onLogout, fn) }

// Token returns the current bearer token ("" when logged out). This is the
// TokenFunc handed to every upstream client.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuth
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Channel returns the session's realtime channel, or nil when logged out.
func (s *Store) Channel() *realtime.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channel
}

// Bootstrap exchanges the stored token for a profile on startup. Failure
// routes to the logged-out state; it is never fatal.
func (s *Store) Bootstrap() {
	defer func() {
		s.mu.Lock()
		s.isLoading = false
		s.mu.Unlock()
	}()

	token := s.Token()
	if token == "" {
		return
	}
	if tokenExpired(token) {
		log.Println("[session] stored token expired, starting logged out")
		s.dropToken()
		return
	}

	user, err := s.auth.Me()
	if err != nil {
		log.Println("[session] error fetching user:", err)
		if upstream.IsUnauthorized(err) {
			s.dropToken()
		}
		return
	}
	s.establish(token, user)
}

// Login exchanges a Google auth code for a session.
func (s *Store) Login(code string) (models.User, error) {
	res, err := s.auth.Login(code)
	if err != nil {
		s.hub.Error("Problem while login")
		return models.User{}, err
	}
	if err := s.saveToken(res.Token); err != nil {
		log.Println("[session] failed to persist token:", err)
	}
	s.establish(res.Token, res.User)
	if res.Message != "" {
		s.hub.Success(res.Message)
	}
	return res.User, nil
}

// AssignRole sets the role post-signup. The backend re-issues the token, so
// the realtime channel is rebuilt on the new credential.
func (s *Store) AssignRole(role models.UserRole) (models.User, error) {
	res, err := s.auth.AddRole(role)
	if err != nil {
		s.hub.Error("Error updating role. Please try again.")
		return models.User{}, err
	}
	if err := s.saveToken(res.Token); err != nil {
		log.Println("[session] failed to persist token:", err)
	}
	s.establish(res.Token, res.User)
	s.hub.Success("Role selected successfully!")
	return res.User, nil
}

// Logout clears the token, resets every dependent cache and closes the
// realtime channel. After it returns no listener and no connection survives.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.isAuth = false
	channel := s.channel
	s.channel = nil
	s.mu.Unlock()

	if s.db != nil {
		if err := s.db.ClearToken(); err != nil {
			log.Println("[session] failed to clear token:", err)
		}
	}
	if channel != nil {
		channel.Close()
	}
	for _, fn := range s.onLogout {
		fn()
	}
	s.hub.Success("Logged out")
}

// establish installs the identity and rebuilds the realtime channel. Any
// previous channel is closed first so no duplicate listeners persist.
func (s *Store) establish(token string, user models.User) {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.isAuth = true
	old := s.channel
	s.channel = nil
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}

	if s.factory != nil {
		ch := s.factory()
		realtime.BindToasts(ch, s.hub)
		ch.Connect(token)
		s.mu.Lock()
		s.channel = ch
		s.mu.Unlock()
	}

	for _, fn := range s.onLogin {
		fn()
	}
}

func (s *Store) saveToken(token string) error {
	if s.db == nil {
		return nil
	}
	return s.db.SaveToken(token)
}

func (s *Store) dropToken() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if s.db != nil {
		if err := s.db.ClearToken(); err != nil {
			log.Println("[session] failed to clear token:", err)
		}
	}
}

// tokenExpired decodes the token's registered claims without verifying the
// signature (only the auth service holds the key) to skip a doomed /me call.
// Tokens without an exp claim are left for the backend to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
