package storage

import (
	"errors"
	"log"

	"tomato-client/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the sqlite file that backs the only durable client state: the
// bearer token and the notification history. Everything else is re-fetched
// from the backend on load.
type Store struct {
	db *gorm.DB
}

// Open connects and migrates the local database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.StoredToken{}, &models.Notification{}); err != nil {
		return nil, err
	}

	log.Println("✅ Local store opened and migrated")
	return &Store{db: db}, nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	var row models.StoredToken
	if err := s.db.First(&row).Error; err != nil {
		return ""
	}
	return row.Token
}

// SaveToken replaces the stored token. Login, logout and role assignment are
// the only callers.
func (s *Store) SaveToken(token string) error {
	var row models.StoredToken
	err := s.db.First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.Create(&models.StoredToken{Token: token}).Error
	case err != nil:
		return err
	default:
		return s.db.Model(&row).Update("token", token).Error
	}
}

// ClearToken removes the stored token.
func (s *Store) ClearToken() error {
	return s.db.Where("1 = 1").Delete(&models.StoredToken{}).Error
}

// AppendNotification records a delivered toast.
func (s *Store) AppendNotification(n models.Notification) {
	if err := s.db.Create(&n).Error; err != nil {
		log.Println("[storage] failed to record notification:", err)
	}
}

// Notifications returns the most recent toasts, newest first.
func (s *Store) Notifications(limit int) []models.Notification {
	var rows []models.Notification
	s.db.Order("id desc").Limit(limit).Find(&rows)
	return rows
}

// ClearNotifications empties the history ("Mute all alerts" action).
func (s *Store) ClearNotifications() error {
	return s.db.Where("1 = 1").Delete(&models.Notification{}).Error
}
