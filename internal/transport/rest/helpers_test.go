package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/i18n"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

//go:generate moq -out auth_service_mock_test.go -pkg rest . authService

var catalog = i18n.MustLoad()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type notifications struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (n *notifications) Notify(_ context.Context, item notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func (n *notifications) all() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notification(nil), n.items...)
}

// newRequest builds a request carrying a client id and locale, as the
// session and locale middleware would.
func newRequest(method, target, body string, locale domain.Locale) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	ctx := ctxutil.WithClientID(req.Context(), "client-1")
	ctx = ctxutil.WithLocale(ctx, locale)
	return req.WithContext(ctx)
}

type response struct {
	StatusCode int             `json:"statusCode"`
	ErrorCode  *int            `json:"errorCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []fieldError    `json:"errors"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.NoError(t, json.Unmarshal(resp.Data, dst))
}

func cookieFrom(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
