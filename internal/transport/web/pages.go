package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/routeguard"
	"github.com/heartmarshall/kairon-web/internal/service/auth"
	"github.com/heartmarshall/kairon-web/internal/service/roadmap"
	"github.com/heartmarshall/kairon-web/internal/session"
)

// Home handles GET /{locale}.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "home.title")
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageHome, v)
}

// LoginPage handles GET /{locale}/login.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "auth.loginTitle")
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageLogin, v)
}

// Login handles POST /{locale}/login. Success stores the tokens and
// redirects to the dashboard; failure re-renders the form with the entered
// email and inline field errors.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "auth.loginTitle")
	if !ok {
		return
	}
	if err := parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, pageLogin, v)
		return
	}

	input := auth.LoginInput{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	v.Form = map[string]string{"email": input.Email}

	ctx := r.Context()
	result, err := h.auth.Login(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		v.Errors = h.tr.FieldErrors(v.Locale, err)
		h.render(w, r, failureStatus(err), pageLogin, v)
		return
	}

	session.FromRequest(w, r, h.opts).SetTokens(result.AccessToken, result.RefreshToken)
	h.toast.Success(ctx, h.tr.T(v.Locale, "auth.loginSuccess"))
	h.redirect(w, r, v.Locale, routeguard.DashboardPath)
}

// RegisterPage handles GET /{locale}/register.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "auth.registerTitle")
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageRegister, v)
}

// Register handles POST /{locale}/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "auth.registerTitle")
	if !ok {
		return
	}
	if err := parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, pageRegister, v)
		return
	}

	input := auth.RegisterInput{
		Name:            r.PostForm.Get("name"),
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
		Phone:           r.PostForm.Get("phone"),
	}
	v.Form = map[string]string{
		"name":  input.Name,
		"email": input.Email,
		"phone": input.Phone,
	}

	ctx := r.Context()
	result, err := h.auth.Register(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		v.Errors = h.tr.FieldErrors(v.Locale, err)
		h.render(w, r, failureStatus(err), pageRegister, v)
		return
	}

	session.FromRequest(w, r, h.opts).SetTokens(result.AccessToken, result.RefreshToken)
	h.toast.Success(ctx, h.tr.T(v.Locale, "auth.registerSuccess"))
	h.redirect(w, r, v.Locale, routeguard.DashboardPath)
}

// Dashboard handles GET /{locale}/dashboard. A token rejected by the auth API
// clears the session and sends the user back to the login page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "dashboard.title")
	if !ok {
		return
	}

	user, err := h.auth.Me(r.Context())
	switch {
	case err == nil:
		v.User = user
		h.render(w, r, http.StatusOK, pageDashboard, v)
	case errors.Is(err, domain.ErrUnauthorized):
		session.FromRequest(w, r, h.opts).ClearAuth()
		h.redirect(w, r, v.Locale, routeguard.LoginPath)
	default:
		h.log.WarnContext(r.Context(), "load current user", slog.String("error", err.Error()))
		h.render(w, r, failureStatus(err), pageDashboard, v)
	}
}

// Logout handles POST /{locale}/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "common.logout")
	if !ok {
		return
	}
	session.FromRequest(w, r, h.opts).ClearAuth()
	h.toast.Info(r.Context(), h.tr.T(v.Locale, "auth.logoutSuccess"))
	h.redirect(w, r, v.Locale, routeguard.LoginPath)
}

// Settings handles GET /{locale}/settings.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "settings.title")
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageSettings, v)
}

// HabitTracker handles GET /{locale}/test/habit-tracker.
func (h *Handler) HabitTracker(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "habit.title")
	if !ok {
		return
	}

	ctx := r.Context()
	today := h.habits.CurrentDate()
	plan, err := h.habits.Today(ctx, today)
	if err != nil {
		h.fail(w, r, v, pageHabit, err)
		return
	}
	motivation, err := h.habits.Motivation(ctx, v.Locale, today)
	if err != nil {
		h.fail(w, r, v, pageHabit, err)
		return
	}

	v.Habit = &habitView{Plan: plan, Motivation: motivation}
	h.render(w, r, http.StatusOK, pageHabit, v)
}

// LearningTime handles GET /{locale}/test/learning-time.
func (h *Handler) LearningTime(w http.ResponseWriter, r *http.Request) {
	v, ok := h.newView(w, r, "roadmap.title")
	if !ok {
		return
	}

	ctx := r.Context()
	rm, err := h.roadmaps.Get(ctx)
	if err != nil {
		h.fail(w, r, v, pageRoadmap, err)
		return
	}
	today, err := h.roadmaps.LessonForDate(ctx, h.habits.CurrentDate())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.fail(w, r, v, pageRoadmap, err)
		return
	}

	rv := &roadmapView{Progress: roadmap.Progress(rm), Today: today}
	for _, d := range rm.Days {
		rv.Days = append(rv.Days, roadmapDayView{
			Day:   d.Day,
			Topic: d.Topic,
			Date:  rm.DateForDay(d.Day).Format(domain.DateLayout),
			Done:  rm.Completed[d.Day],
		})
	}
	v.Roadmap = rv
	h.render(w, r, http.StatusOK, pageRoadmap, v)
}

// fail renders page without data and shows the error as a toast.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, v *view, page string, err error) {
	status := http.StatusInternalServerError
	msg := h.tr.T(v.Locale, "errors.500")
	if errors.Is(err, domain.ErrUnauthorized) {
		status = http.StatusUnauthorized
		msg = h.tr.T(v.Locale, "errors.401")
	}
	h.log.ErrorContext(r.Context(), "page data",
		slog.String("page", page),
		slog.String("error", err.Error()),
	)
	h.toast.Error(r.Context(), msg)
	h.render(w, r, status, page, v)
}
