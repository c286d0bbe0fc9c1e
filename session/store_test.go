package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/realtime"
	"tomato-client/storage"
	"tomato-client/upstream"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T, handler http.HandlerFunc) *upstream.AuthClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return upstream.NewAuthClient(server.URL, func() string { return "" })
}

func testChannelFactory() *realtime.Channel {
	// Dial target does not resolve; the channel gives up after one attempt
	return realtime.New("ws://127.0.0.1:1", 1, time.Millisecond)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginEstablishesSession(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{"token": "jwt-1", "user": {"_id": "u1", "name": "Asha", "role": "customer"}, "message": "Welcome back!"}`))
	})

	hub := notify.NewHub(nil)
	toasts, cancel := hub.Subscribe()
	defer cancel()

	store := NewStore(nil, hub)
	store.SetAuthClient(auth)
	store.SetChannelFactory(testChannelFactory)

	loginHookRan := false
	store.OnLogin(func() { loginHookRan = true })

	user, err := store.Login("auth-code")
	require.NoError(t, err)

	assert.Equal(t, "Asha", user.Name)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "jwt-1", store.Token())
	assert.True(t, loginHookRan, "login hooks must run after identity is established")
	require.NotNil(t, store.Channel())

	toast := <-toasts
	assert.Equal(t, notify.LevelSuccess, toast.Level)
	assert.Equal(t, "Welcome back!", toast.Message)
}

func TestLoginFailureToasts(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Invalid code"}`))
	})

	hub := notify.NewHub(nil)
	toasts, cancel := hub.Subscribe()
	defer cancel()

	store := NewStore(nil, hub)
	store.SetAuthClient(auth)

	_, err := store.Login("bad-code")
	require.Error(t, err)
	assert.False(t, store.IsAuthenticated())

	toast := <-toasts
	assert.Equal(t, notify.LevelError, toast.Level)
	assert.Equal(t, "Problem while login", toast.Message)
}

func TestAssignRoleRebuildsChannel(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"token": "jwt-1", "user": {"_id": "u1", "name": "Asha", "role": ""}}`))
		case "/api/auth/add/role":
			w.Write([]byte(`{"token": "jwt-2", "user": {"_id": "u1", "name": "Asha", "role": "seller"}}`))
		}
	})

	hub := notify.NewHub(nil)
	store := NewStore(nil, hub)
	store.SetAuthClient(auth)
	store.SetChannelFactory(testChannelFactory)

	_, err := store.Login("auth-code")
	require.NoError(t, err)
	first := store.Channel()

	toasts, cancel := hub.Subscribe()
	defer cancel()

	user, err := store.AssignRole(models.RoleSeller)
	require.NoError(t, err)

	assert.Equal(t, models.RoleSeller, user.Role)
	assert.Equal(t, "jwt-2", store.Token())
	assert.NotSame(t, first, store.Channel(), "role assignment re-issues the token, so the channel must be rebuilt")
	assert.Zero(t, first.HandlerCount(), "the replaced channel must shed its listeners")

	toast := <-toasts
	assert.Equal(t, "Role selected successfully!", toast.Message)
}

func TestAssignRoleFailure(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	hub := notify.NewHub(nil)
	toasts, cancel := hub.Subscribe()
	defer cancel()

	store := NewStore(nil, hub)
	store.SetAuthClient(auth)

	_, err := store.AssignRole(models.RoleRider)
	require.Error(t, err)

	toast := <-toasts
	assert.Equal(t, "Error updating role. Please try again.", toast.Message)
}

func TestLogoutResetsEverything(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "jwt-1", "user": {"_id": "u1", "role": "customer"}}`))
	})

	hub := notify.NewHub(nil)
	store := NewStore(nil, hub)
	store.SetAuthClient(auth)
	store.SetChannelFactory(testChannelFactory)

	logoutHookRan := false
	store.OnLogout(func() { logoutHookRan = true })

	_, err := store.Login("auth-code")
	require.NoError(t, err)
	channel := store.Channel()
	require.NotNil(t, channel)

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.Nil(t, store.Channel())
	assert.Zero(t, channel.HandlerCount(), "logout must remove every realtime listener")
	assert.True(t, logoutHookRan, "logout must reset dependent caches")
}

func TestBootstrapWithoutToken(t *testing.T) {
	store := NewStore(nil, notify.NewHub(nil))
	store.Bootstrap()

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading(), "bootstrap must always end the loading state")
}

func TestBootstrapDropsExpiredToken(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	require.NoError(t, db.SaveToken(signedToken(t, time.Now().Add(-time.Hour))))

	store := NewStore(db, notify.NewHub(nil))
	store.Bootstrap()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Empty(t, db.Token(), "expired token must be purged from storage")
}

func TestBootstrapResolvesValidToken(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id": "u1", "name": "Asha", "role": "customer"}`))
	})

	db, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	require.NoError(t, db.SaveToken(signedToken(t, time.Now().Add(time.Hour))))

	store := NewStore(db, notify.NewHub(nil))
	store.SetAuthClient(auth)
	store.Bootstrap()

	assert.True(t, store.IsAuthenticated())
	require.NotNil(t, store.User())
	assert.Equal(t, "Asha", store.User().Name)
}

func TestBootstrapDropsTokenOn401(t *testing.T) {
	auth := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Invalid token"}`))
	})

	db, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	require.NoError(t, db.SaveToken(signedToken(t, time.Now().Add(time.Hour))))

	store := NewStore(db, notify.NewHub(nil))
	store.SetAuthClient(auth)
	store.Bootstrap()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, db.Token())
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired("not-a-jwt"))
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Minute))))
}
