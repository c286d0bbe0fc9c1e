package models

import "time"

// StoredToken is the durable bearer token, the gateway's replacement for the
// browser's localStorage slot. There is at most one row.
type StoredToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notification is one delivered toast, kept so the notifications view can
// show history across restarts.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Level     string    `json:"level" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
}
