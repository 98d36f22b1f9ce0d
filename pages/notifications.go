package pages

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/tools/hook"
)

// Level is the kind of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notification is one toast.
type Notification struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// NotifyEvent is fired for every pushed notification.
type NotifyEvent struct {
	hook.Event
	Notification Notification
}

// Notifications is the toast queue of a session, newest last. It is safe
// for concurrent use and may be shared between pages.
type Notifications struct {
	logger   *slog.Logger
	now      func() time.Time
	onNotify *hook.Hook[*NotifyEvent]

	mu    sync.Mutex
	items []Notification
}

func NewNotifications(logger *slog.Logger) *Notifications {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifications{
		logger:   logger,
		now:      time.Now,
		onNotify: &hook.Hook[*NotifyEvent]{},
	}
}

// OnNotify lets a front end show toasts as they arrive.
func (n *Notifications) OnNotify() *hook.Hook[*NotifyEvent] {
	return n.onNotify
}

func (n *Notifications) Success(msg string) Notification { return n.Push(LevelSuccess, msg) }

func (n *Notifications) Error(msg string) Notification { return n.Push(LevelError, msg) }

func (n *Notifications) Info(msg string) Notification { return n.Push(LevelInfo, msg) }

func (n *Notifications) Warning(msg string) Notification { return n.Push(LevelWarning, msg) }

// Push appends a notification and returns it.
func (n *Notifications) Push(level Level, msg string) Notification {
	note := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		At:      n.now(),
	}

	n.mu.Lock()
	n.items = append(n.items, note)
	n.mu.Unlock()

	if level == LevelError {
		n.logger.Warn("notification", "level", level, "message", msg)
	} else {
		n.logger.Debug("notification", "level", level, "message", msg)
	}

	if err := n.onNotify.Trigger(&NotifyEvent{Notification: note}); err != nil {
		n.logger.Warn("notification hook failed", "error", err)
	}
	return note
}

// Dismiss removes one notification. It reports whether it was present.
func (n *Notifications) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := slices.IndexFunc(n.items, func(x Notification) bool { return x.ID == id })
	if i < 0 {
		return false
	}
	n.items = slices.Delete(n.items, i, i+1)
	return true
}

// Items returns the pending notifications, oldest first.
func (n *Notifications) Items() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.items)
}

// Latest returns the newest notification.
func (n *Notifications) Latest() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.items) == 0 {
		return Notification{}, false
	}
	return n.items[len(n.items)-1], true
}

// Drain returns the pending notifications and empties the queue.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
