package rest

import (
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

type notificationQueue interface {
	Drain(clientID string) []notify.Notification
}

// NotificationHandler hands queued toasts to the browser that owns them.
type NotificationHandler struct {
	queue notificationQueue
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(queue notificationQueue) *NotificationHandler {
	return &NotificationHandler{queue: queue}
}

// Drain handles GET /api/notifications. Returned notifications are removed
// from the queue.
func (h *NotificationHandler) Drain(w http.ResponseWriter, r *http.Request) {
	items := []notify.Notification{}
	if id, ok := ctxutil.ClientIDFromCtx(r.Context()); ok {
		if drained := h.queue.Drain(id); len(drained) > 0 {
			items = drained
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeData(w, http.StatusOK, "ok", items)
}
