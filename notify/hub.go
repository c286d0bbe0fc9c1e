// Package notify fans transient toasts out to whoever is watching the
// events stream, and records them for the notifications view.
package notify

import (
	"sync"
	"time"

	"tomato-client/models"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	// LevelAlert is the high-visibility styling for rider "order available"
	// pushes; it also lives longer on screen.
	LevelAlert Level = "alert"
)

const (
	// StandardDuration matches the default toast lifetime.
	StandardDuration = 4 * time.Second
	// AlertDuration is the longer-lived rider alert lifetime.
	AlertDuration = 8 * time.Second
)

// Toast is one transient notification.
type Toast struct {
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Event    string        `json:"event,omitempty"` // originating realtime event, if any
	Duration time.Duration `json:"duration"`
}

// Recorder persists delivered toasts. Satisfied by storage.Store; nil
// disables persistence (tests).
type Recorder interface {
	AppendNotification(models.Notification)
}

// Hub delivers toasts to subscribers without ever blocking the pusher: a
// subscriber that has fallen behind misses toasts rather than stalling the
// realtime channel.
type Hub struct {
	mu       sync.Mutex
	subs     map[int]chan Toast
	nextID   int
	recorder Recorder
}

func NewHub(recorder Recorder) *Hub {
	return &Hub{subs: make(map[int]chan Toast), recorder: recorder}
}

// Subscribe returns a toast stream and a cancel func that must be called when
// the consumer goes away.
func (h *Hub) Subscribe() (<-chan Toast, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Toast, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Push delivers a toast to all subscribers and records it.
func (h *Hub) Push(t Toast) {
	if t.Duration == 0 {
		if t.Level == LevelAlert {
			t.Duration = AlertDuration
		} else {
			t.Duration = StandardDuration
		}
	}

	if h.recorder != nil {
		h.recorder.AppendNotification(models.Notification{
			Level:   string(t.Level),
			Message: t.Message,
			Event:   t.Event,
		})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		select {
		case sub <- t:
		default:
		}
	}
}

func (h *Hub) Info(message string)    { h.Push(Toast{Level: LevelInfo, Message: message}) }
func (h *Hub) Success(message string) { h.Push(Toast{Level: LevelSuccess, Message: message}) }
func (h *Hub) Error(message string)   { h.Push(Toast{Level: LevelError, Message: message}) }

// SubscriberCount is used by lifecycle checks and tests.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
