// Package realtime maintains the single push connection per authenticated
// session and translates named server events into local effects: a toast,
// and/or a view-local refetch.
package realtime

import (
	"encoding/json"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one server push frame.
type Event struct {
	Name    string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

// Handler reacts to one event's payload.
type Handler func(payload map[string]any)

type handlerEntry struct {
	id int
	fn Handler
}

// Channel is the websocket client. One Channel exists per authenticated
// session; it is owned by the session lifecycle and views only subscribe.
type Channel struct {
	mu        sync.RWMutex
	baseURL   string
	attempts  int
	delay     time.Duration
	conn      *websocket.Conn
	handlers  map[string][]handlerEntry
	nextID    int
	connected bool
	closed    bool
	done      chan struct{}
}

// New builds a channel against the realtime service. The dial URL is formed
// at Connect time, from the token in hand then.
func New(baseURL string, attempts int, delay time.Duration) *Channel {
	return &Channel{
		baseURL:  baseURL,
		attempts: attempts,
		delay:    delay,
		handlers: make(map[string][]handlerEntry),
		done:     make(chan struct{}),
	}
}

// Connect starts the connection loop in the background, carrying the token in
// the handshake query. An empty token never dials. Reconnection uses a fixed delay
// and a bounded number of consecutive failed attempts; exhausting them leaves
// the channel disconnected until the session is rebuilt. Errors are
// diagnostics only: the UI degrades to non-realtime, it never breaks.
func (c *Channel) Connect(token string) {
	if token == "" {
		log.Println("[realtime] no token, connection not attempted")
		return
	}
	go c.run(c.baseURL + "/?token=" + url.QueryEscape(token))
}

func (c *Channel) run(dialURL string) {
	failures := 0
	for {
		select {
		case <-c.done:
			return
		default:
		}

		dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
		conn, _, err := dialer.Dial(dialURL, nil)
		if err != nil {
			failures++
			log.Printf("[realtime] connection error (attempt %d/%d): %v", failures, c.attempts, err)
			if failures >= c.attempts {
				log.Println("[realtime] reconnect attempts exhausted, staying disconnected")
				return
			}
			select {
			case <-c.done:
				return
			case <-time.After(c.delay):
			}
			continue
		}

		failures = 0
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			conn.Close()
			return
		}
		c.conn = conn
		c.connected = true
		c.mu.Unlock()
		log.Println("[realtime] connected")

		c.readLoop(conn)

		c.mu.Lock()
		c.conn = nil
		c.connected = false
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}
		log.Println("[realtime] disconnected")

		select {
		case <-c.done:
			return
		case <-time.After(c.delay):
		}
	}
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}
		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}
		c.dispatch(&event)
	}
}

func (c *Channel) dispatch(event *Event) {
	c.mu.RLock()
	entries := make([]handlerEntry, len(c.handlers[event.Name]))
	copy(entries, c.handlers[event.Name])
	c.mu.RUnlock()

	for _, entry := range entries {
		go entry.fn(event.Payload)
	}
}

// Connected reports the current connection state.
func (c *Channel) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// On registers a handler for a named event and returns its unsubscribe func.
// Views call the unsubscribe on unmount so no listener leaks across route
// changes or reconnects.
func (c *Channel) On(event string, fn Handler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[event] = append(c.handlers[event], handlerEntry{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		entries := c.handlers[event]
		for i, entry := range entries {
			if entry.id == id {
				c.handlers[event] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
		if len(c.handlers[event]) == 0 {
			delete(c.handlers, event)
		}
	}
}

// HandlerCount returns the number of live listeners across all events.
func (c *Channel) HandlerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, entries := range c.handlers {
		n += len(entries)
	}
	return n
}

// Close tears the channel down: every listener is removed and the connection
// is closed. Called on logout and on session rebuild; safe to call twice.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.handlers = make(map[string][]handlerEntry)
	conn := c.conn
	c.conn = nil
	c.connected = false
	close(c.done)
	c.mu.Unlock()

	if conn != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}
}
