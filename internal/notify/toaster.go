package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/apierr"
	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Toaster builds notifications with the standard durations and hands them
// to a Notifier.
type Toaster struct {
	sink Notifier
	tr   apierr.Translator
	now  func() time.Time
}

// NewToaster creates a Toaster writing to sink and resolving API errors with tr.
func NewToaster(sink Notifier, tr apierr.Translator) *Toaster {
	return &Toaster{sink: sink, tr: tr, now: time.Now}
}

func (t *Toaster) Success(ctx context.Context, msg string) { t.push(ctx, LevelSuccess, msg) }
func (t *Toaster) Error(ctx context.Context, msg string)   { t.push(ctx, LevelError, msg) }
func (t *Toaster) Warning(ctx context.Context, msg string) { t.push(ctx, LevelWarning, msg) }
func (t *Toaster) Info(ctx context.Context, msg string)    { t.push(ctx, LevelInfo, msg) }

// APIError shows an error toast with the message resolved for locale.
func (t *Toaster) APIError(ctx context.Context, locale domain.Locale, err error) {
	t.push(ctx, LevelError, apierr.Resolve(t.tr, locale, err))
}

func (t *Toaster) push(ctx context.Context, level Level, msg string) {
	t.sink.Notify(ctx, Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		AutoClose: level.AutoClose(),
		CreatedAt: t.now(),
	})
}
