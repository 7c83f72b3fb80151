// Package notify carries user-visible toast notifications from request
// handling code to the browser. Producers depend on the Notifier capability;
// the browser polls its own queue.
package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Level is the toast severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// AutoClose returns how long a toast of this level stays visible.
func (l Level) AutoClose() time.Duration {
	switch l {
	case LevelError:
		return 5 * time.Second
	case LevelWarning:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// Notification is one toast.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	AutoClose time.Duration
	CreatedAt time.Time
}

// MarshalJSON writes AutoClose in milliseconds.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Level     Level     `json:"level"`
		Message   string    `json:"message"`
		AutoClose int64     `json:"autoClose"`
		CreatedAt time.Time `json:"createdAt"`
	}{n.ID, n.Level, n.Message, n.AutoClose.Milliseconds(), n.CreatedAt})
}

// Notifier accepts notifications without blocking the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})
