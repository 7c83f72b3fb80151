package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/service/habit"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// habitService defines the habit tracker operations used by HabitHandler.
type habitService interface {
	CurrentDate() time.Time
	ListRoutines(ctx context.Context) ([]domain.Routine, error)
	CreateRoutine(ctx context.Context, input habit.RoutineInput) (*domain.Routine, error)
	UpdateRoutine(ctx context.Context, id uuid.UUID, input habit.RoutineInput) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
	DailyChecks(ctx context.Context, date time.Time) (domain.DailyChecks, error)
	ToggleCompletion(ctx context.Context, date time.Time, routineID uuid.UUID) (domain.DailyChecks, error)
	Motivation(ctx context.Context, locale domain.Locale, date time.Time) (*habit.Motivation, error)
	Today(ctx context.Context, date time.Time) (*habit.DayPlan, error)
	Week(ctx context.Context, anchor time.Time) ([]habit.DayPlan, error)
}

// HabitHandler serves the habit tracker under /test/habit-tracker. Data is
// scoped to the browser's client cookie.
type HabitHandler struct {
	svc habitService
	tr  translator
	log *slog.Logger
}

// NewHabitHandler creates a HabitHandler.
func NewHabitHandler(svc habitService, tr translator, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{svc: svc, tr: tr, log: logger.With("handler", "habit")}
}

type checksResponse struct {
	Date       string             `json:"date"`
	Checks     domain.DailyChecks `json:"checks"`
	Motivation *habit.Motivation  `json:"motivation"`
}

// ListRoutines handles GET /test/habit-tracker/routines.
func (h *HabitHandler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := h.svc.ListRoutines(r.Context())
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", routines)
}

// CreateRoutine handles POST /test/habit-tracker/routines.
func (h *HabitHandler) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	var input habit.RoutineInput
	if err := decodeJSON(r, &input); err != nil {
		badRequest(w, r, h.tr)
		return
	}

	routine, err := h.svc.CreateRoutine(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusCreated, "created", routine)
}

// UpdateRoutine handles PUT /test/habit-tracker/routines/{id}.
func (h *HabitHandler) UpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := habit.ParseRoutineID(r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	var input habit.RoutineInput
	if err := decodeJSON(r, &input); err != nil {
		badRequest(w, r, h.tr)
		return
	}

	routine, err := h.svc.UpdateRoutine(r.Context(), id, input)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", routine)
}

// DeleteRoutine handles DELETE /test/habit-tracker/routines/{id}.
func (h *HabitHandler) DeleteRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := habit.ParseRoutineID(r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	if err := h.svc.DeleteRoutine(r.Context(), id); err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleActive handles POST /test/habit-tracker/routines/{id}/active.
func (h *HabitHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := habit.ParseRoutineID(r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	routine, err := h.svc.ToggleActive(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", routine)
}

// Checks handles GET /test/habit-tracker/checks?date=YYYY-MM-DD.
func (h *HabitHandler) Checks(w http.ResponseWriter, r *http.Request) {
	date, err := h.date(r)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	checks, err := h.svc.DailyChecks(r.Context(), date)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeChecks(w, r, date, checks)
}

// ToggleCompletion handles POST /test/habit-tracker/checks/{id}?date=YYYY-MM-DD.
func (h *HabitHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := habit.ParseRoutineID(r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	date, err := h.date(r)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	checks, err := h.svc.ToggleCompletion(r.Context(), date, id)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeChecks(w, r, date, checks)
}

// Today handles GET /test/habit-tracker/today?date=YYYY-MM-DD.
func (h *HabitHandler) Today(w http.ResponseWriter, r *http.Request) {
	date, err := h.date(r)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	plan, err := h.svc.Today(r.Context(), date)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", plan)
}

// Week handles GET /test/habit-tracker/week?date=YYYY-MM-DD.
func (h *HabitHandler) Week(w http.ResponseWriter, r *http.Request) {
	date, err := h.date(r)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	week, err := h.svc.Week(r.Context(), date)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", week)
}

func (h *HabitHandler) date(r *http.Request) (time.Time, error) {
	return habit.ParseDate(r.URL.Query().Get("date"), h.svc.CurrentDate())
}

func (h *HabitHandler) writeChecks(w http.ResponseWriter, r *http.Request, date time.Time, checks domain.DailyChecks) {
	motivation, err := h.svc.Motivation(r.Context(), ctxutil.LocaleFromCtx(r.Context()), date)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", checksResponse{
		Date:       date.Format(domain.DateLayout),
		Checks:     checks,
		Motivation: motivation,
	})
}
