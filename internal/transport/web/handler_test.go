package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kairon-web/internal/adapter/kv/memory"
	"github.com/heartmarshall/kairon-web/internal/apierr"
	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/i18n"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/internal/service/auth"
	"github.com/heartmarshall/kairon-web/internal/service/habit"
	"github.com/heartmarshall/kairon-web/internal/service/roadmap"
	"github.com/heartmarshall/kairon-web/internal/session"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

//go:generate moq -out auth_service_mock_test.go -pkg web . authService

const testClient = "client-1"

var catalog = i18n.MustLoad()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	h      *Handler
	auth   *authServiceMock
	habits *habit.Service
	queue  *notify.Queue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	queue := notify.NewQueue(10, time.Minute, discardLogger())
	t.Cleanup(queue.Stop)

	authMock := &authServiceMock{}
	habits := habit.NewService(discardLogger(), store, catalog)
	roadmaps := roadmap.NewService(discardLogger(), store)

	h, err := NewHandler(discardLogger(), catalog, session.DefaultOptions(), authMock, habits, roadmaps, queue)
	require.NoError(t, err)

	return &fixture{h: h, auth: authMock, habits: habits, queue: queue}
}

func clientCtx(locale domain.Locale) context.Context {
	ctx := ctxutil.WithClientID(context.Background(), testClient)
	return ctxutil.WithLocale(ctx, locale)
}

// newRequest builds a request as the session and locale middleware leave it.
func newRequest(method, target string, form url.Values, locale domain.Locale) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.SetPathValue("locale", strings.SplitN(strings.TrimPrefix(target, "/"), "/", 2)[0])
	return req.WithContext(clientCtx(locale))
}

func withToken(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	return req.WithContext(ctxutil.WithAccessToken(req.Context(), token))
}

func cookieFrom(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandler_Home(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.h.Home(rec, newRequest(http.MethodGet, "/en", nil, domain.LocaleEN))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "Welcome to Kairon")
	assert.Contains(t, body, `href="/vi"`)
	assert.Contains(t, body, `href="/en/login"`)
	assert.NotContains(t, body, "/en/logout")
}

func TestHandler_Home_Vietnamese(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.h.Home(rec, newRequest(http.MethodGet, "/vi", nil, domain.LocaleVI))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="vi">`)
	assert.Contains(t, rec.Body.String(), catalog.T(domain.LocaleVI, "common.login"))
}

func TestHandler_UnknownLocale(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.h.Home(rec, newRequest(http.MethodGet, "/fr", nil, domain.LocaleVI))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Login_ValidationRerendersForm(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.LoginFunc = func(_ context.Context, input auth.LoginInput) (*auth.Result, error) {
		return nil, input.Validate()
	}

	rec := httptest.NewRecorder()
	form := url.Values{"email": {"not-an-email"}, "password": {""}}
	f.h.Login(rec, newRequest(http.MethodPost, "/en/login", form, domain.LocaleEN))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-field="email">Email is invalid`)
	assert.Contains(t, body, `data-field="password">Password is required`)
	assert.Contains(t, body, `value="not-an-email"`)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Nil(t, cookieFrom(rec, "access_token"))
}

func TestHandler_Login_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.LoginFunc = func(context.Context, auth.LoginInput) (*auth.Result, error) {
		return &auth.Result{AccessToken: "tok", RefreshToken: "ref"}, nil
	}

	rec := httptest.NewRecorder()
	form := url.Values{"email": {"an@example.com"}, "password": {"Secret1"}}
	f.h.Login(rec, newRequest(http.MethodPost, "/en/login", form, domain.LocaleEN))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/dashboard", rec.Header().Get("Location"))

	access := cookieFrom(rec, "access_token")
	require.NotNil(t, access)
	assert.Equal(t, "tok", access.Value)
	assert.True(t, access.HttpOnly)
	require.NotNil(t, cookieFrom(rec, "refresh_token"))

	require.Len(t, f.auth.LoginCalls(), 1)
	assert.Equal(t, "an@example.com", f.auth.LoginCalls()[0].Input.Email)

	toasts := f.queue.Drain(testClient)
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelSuccess, toasts[0].Level)
	assert.Equal(t, "Logged in successfully!", toasts[0].Message)
}

func TestHandler_Login_APIErrorStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.LoginFunc = func(context.Context, auth.LoginInput) (*auth.Result, error) {
		apiErr := apierr.FromResponse(http.StatusBadRequest, []byte(`{"statusCode":400,"message":"Invalid credentials","errorCode":2}`))
		return nil, fmt.Errorf("auth.Login: %w", apiErr)
	}

	rec := httptest.NewRecorder()
	form := url.Values{"email": {"an@example.com"}, "password": {"Secret1"}}
	f.h.Login(rec, newRequest(http.MethodPost, "/en/login", form, domain.LocaleEN))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "field-error")
	assert.Nil(t, cookieFrom(rec, "access_token"))
}

func TestHandler_Register_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.RegisterFunc = func(_ context.Context, input auth.RegisterInput) (*auth.Result, error) {
		if err := input.Validate(); err != nil {
			return nil, err
		}
		return &auth.Result{AccessToken: "tok", User: &domain.User{ID: "u1", Name: input.Name}}, nil
	}

	rec := httptest.NewRecorder()
	form := url.Values{
		"name":            {"An"},
		"email":           {"an@example.com"},
		"password":        {"Secret1"},
		"confirmPassword": {"Secret1"},
	}
	f.h.Register(rec, newRequest(http.MethodPost, "/vi/register", form, domain.LocaleVI))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/vi/dashboard", rec.Header().Get("Location"))
	assert.NotNil(t, cookieFrom(rec, "access_token"))
	assert.Nil(t, cookieFrom(rec, "refresh_token"))
}

func TestHandler_Register_ConfirmMismatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.RegisterFunc = func(_ context.Context, input auth.RegisterInput) (*auth.Result, error) {
		return nil, input.Validate()
	}

	rec := httptest.NewRecorder()
	form := url.Values{
		"name":            {"An"},
		"email":           {"an@example.com"},
		"password":        {"Secret1"},
		"confirmPassword": {"Secret2"},
	}
	f.h.Register(rec, newRequest(http.MethodPost, "/en/register", form, domain.LocaleEN))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-field="confirmPassword">Passwords do not match`)
	assert.Contains(t, body, `value="An"`)
	assert.NotContains(t, body, "Secret1")
}

func TestHandler_Dashboard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.MeFunc = func(context.Context) (*domain.User, error) {
		return &domain.User{ID: "u1", Name: "An", Email: "an@example.com"}, nil
	}

	rec := httptest.NewRecorder()
	f.h.Dashboard(rec, withToken(newRequest(http.MethodGet, "/en/dashboard", nil, domain.LocaleEN), "tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hello, An")
	assert.Contains(t, body, "an@example.com")
	assert.Contains(t, body, `action="/en/logout"`)
}

func TestHandler_Dashboard_RejectedTokenClearsSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.MeFunc = func(context.Context) (*domain.User, error) {
		return nil, fmt.Errorf("auth.Me: %w", domain.ErrUnauthorized)
	}

	rec := httptest.NewRecorder()
	f.h.Dashboard(rec, withToken(newRequest(http.MethodGet, "/en/dashboard", nil, domain.LocaleEN), "stale"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/login", rec.Header().Get("Location"))
	access := cookieFrom(rec, "access_token")
	require.NotNil(t, access)
	assert.Equal(t, -1, access.MaxAge)
}

func TestHandler_Dashboard_APIUnavailable(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.MeFunc = func(context.Context) (*domain.User, error) {
		return nil, apierr.Network(fmt.Errorf("connection refused"))
	}

	rec := httptest.NewRecorder()
	f.h.Dashboard(rec, withToken(newRequest(http.MethodGet, "/en/dashboard", nil, domain.LocaleEN), "tok"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "You need to log in to view this page.")
}

func TestHandler_Logout_ToastShownOnNextPage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.h.Logout(rec, withToken(newRequest(http.MethodPost, "/en/logout", nil, domain.LocaleEN), "tok"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/login", rec.Header().Get("Location"))
	access := cookieFrom(rec, "access_token")
	require.NotNil(t, access)
	assert.Equal(t, -1, access.MaxAge)
	assert.Equal(t, 1, f.queue.Len(testClient))

	rec = httptest.NewRecorder()
	f.h.LoginPage(rec, newRequest(http.MethodGet, "/en/login", nil, domain.LocaleEN))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="toast toast-info" data-auto-close="3000">You have been logged out.`)
	assert.Zero(t, f.queue.Len(testClient))
}

func TestHandler_Settings_LanguageLinksKeepPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.h.Settings(rec, withToken(newRequest(http.MethodGet, "/en/settings", nil, domain.LocaleEN), "tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/vi/settings"`)
	assert.Contains(t, body, `href="/en/settings"`)
	assert.Contains(t, body, "Dark")
}

func TestHandler_HabitTracker(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.habits.CreateRoutine(clientCtx(domain.LocaleEN), habit.RoutineInput{Title: "Morning stretch", TimeOfDay: "06:30"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	f.h.HabitTracker(rec, newRequest(http.MethodGet, "/en/test/habit-tracker", nil, domain.LocaleEN))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "06:30 Morning stretch")
	assert.Contains(t, body, "(0/1)")
	assert.Contains(t, body, "motivation-none")
}

func TestHandler_HabitTracker_NoClient(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/en/test/habit-tracker", nil)
	req.SetPathValue("locale", "en")
	req = req.WithContext(ctxutil.WithLocale(req.Context(), domain.LocaleEN))

	rec := httptest.NewRecorder()
	f.h.HabitTracker(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_LearningTime(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.h.LearningTime(rec, newRequest(http.MethodGet, "/en/test/learning-time", nil, domain.LocaleEN))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Progress: 0%")
	assert.Contains(t, body, "2025-01-02 · Array Basics")
	assert.Contains(t, body, `data-day="1"`)
}
