package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDuration is how long a notification stays visible unless closed.
const DefaultDuration = 5 * time.Second

// Notification is a timed, user-facing message reporting the outcome of an
// action. Offset is the vertical stacking index so concurrent notifications
// do not overlap.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Offset    int       `json:"offset"`
	CreatedAt time.Time `json:"created_at"`
}

type entry struct {
	notification Notification
	timer        *time.Timer
}

// Hub holds the currently visible notifications and auto-dismisses them
// after their duration. An explicit Close cancels the pending dismissal.
type Hub struct {
	mu      sync.Mutex
	entries []*entry
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{}
}

// Push adds a notification with the given severity and message. A duration
// of zero uses DefaultDuration. The notification is removed automatically
// when the duration elapses.
func (h *Hub) Push(severity Severity, message string, duration time.Duration) Notification {
	if duration <= 0 {
		duration = DefaultDuration
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	n := Notification{
		ID:        uuid.New(),
		Severity:  severity,
		Message:   message,
		Offset:    len(h.entries),
		CreatedAt: time.Now(),
	}
	e := &entry{notification: n}
	e.timer = time.AfterFunc(duration, func() {
		h.remove(n.ID)
	})
	h.entries = append(h.entries, e)
	return n
}

// Success pushes a success notification with the default duration.
func (h *Hub) Success(message string) Notification {
	return h.Push(SeveritySuccess, message, 0)
}

// Error pushes an error notification with the default duration.
func (h *Hub) Error(message string) Notification {
	return h.Push(SeverityError, message, 0)
}

// Close dismisses a notification and cancels its pending auto-dismiss.
// It returns false if the notification is no longer active.
func (h *Hub) Close(id uuid.UUID) bool {
	return h.remove(id)
}

// Active returns the currently visible notifications in creation order,
// with offsets reassigned by position.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, 0, len(h.entries))
	for i, e := range h.entries {
		n := e.notification
		n.Offset = i
		out = append(out, n)
	}
	return out
}

func (h *Hub) remove(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, e := range h.entries {
		if e.notification.ID == id {
			e.timer.Stop()
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}
