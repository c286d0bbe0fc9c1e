package storage

import (
	"path/filepath"
	"testing"

	"tomato-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	return store
}

func TestTokenLifecycle(t *testing.T) {
	store := openTestStore(t)

	assert.Empty(t, store.Token(), "fresh store starts logged out")

	require.NoError(t, store.SaveToken("jwt-1"))
	assert.Equal(t, "jwt-1", store.Token())

	// Saving again replaces, never accumulates rows
	require.NoError(t, store.SaveToken("jwt-2"))
	assert.Equal(t, "jwt-2", store.Token())

	require.NoError(t, store.ClearToken())
	assert.Empty(t, store.Token())
}

func TestNotificationHistory(t *testing.T) {
	store := openTestStore(t)

	store.AppendNotification(models.Notification{Level: "success", Message: "Added to cart"})
	store.AppendNotification(models.Notification{Level: "alert", Message: "🔔 New order available for delivery!", Event: "order:available"})

	rows := store.Notifications(10)
	require.Len(t, rows, 2)
	assert.Equal(t, "order:available", rows[0].Event, "newest first")

	assert.Len(t, store.Notifications(1), 1)

	require.NoError(t, store.ClearNotifications())
	assert.Empty(t, store.Notifications(10))
}

func TestTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")
	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveToken("jwt-1"))

	second, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", second.Token())
}
