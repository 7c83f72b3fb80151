package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/service/roadmap"
)

// roadmapService defines the learning roadmap operations used by RoadmapHandler.
type roadmapService interface {
	Get(ctx context.Context) (*domain.Roadmap, error)
	SetStartDate(ctx context.Context, date string) (*domain.Roadmap, error)
	ImportJSON(ctx context.Context, raw []byte) (*domain.Roadmap, error)
	Reset(ctx context.Context) (*domain.Roadmap, error)
	ToggleDay(ctx context.Context, day int) (*domain.Roadmap, error)
	LessonForDate(ctx context.Context, date time.Time) (*domain.RoadmapDay, error)
	Calendar(ctx context.Context, year, month int) (*roadmap.Calendar, error)
}

// RoadmapHandler serves the learning roadmap under /test/learning-time.
type RoadmapHandler struct {
	svc roadmapService
	tr  translator
	log *slog.Logger
	now func() time.Time
}

// NewRoadmapHandler creates a RoadmapHandler.
func NewRoadmapHandler(svc roadmapService, tr translator, logger *slog.Logger) *RoadmapHandler {
	return &RoadmapHandler{svc: svc, tr: tr, log: logger.With("handler", "roadmap"), now: time.Now}
}

type roadmapResponse struct {
	Roadmap  *domain.Roadmap    `json:"roadmap"`
	Progress int                `json:"progress"`
	Today    *domain.RoadmapDay `json:"today"`
}

type startDateRequest struct {
	StartDate string `json:"startDate"`
}

// Get handles GET /test/learning-time.
func (h *RoadmapHandler) Get(w http.ResponseWriter, r *http.Request) {
	rm, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeRoadmap(w, r, rm)
}

// SetStartDate handles PUT /test/learning-time/start-date.
func (h *RoadmapHandler) SetStartDate(w http.ResponseWriter, r *http.Request) {
	var req startDateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, r, h.tr)
		return
	}

	rm, err := h.svc.SetStartDate(r.Context(), req.StartDate)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeRoadmap(w, r, rm)
}

// Import handles POST /test/learning-time/import. The body is the raw JSON
// array of roadmap days.
func (h *RoadmapHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		badRequest(w, r, h.tr)
		return
	}

	rm, err := h.svc.ImportJSON(r.Context(), raw)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeRoadmap(w, r, rm)
}

// Reset handles DELETE /test/learning-time.
func (h *RoadmapHandler) Reset(w http.ResponseWriter, r *http.Request) {
	rm, err := h.svc.Reset(r.Context())
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeRoadmap(w, r, rm)
}

// ToggleDay handles POST /test/learning-time/days/{day}/toggle.
func (h *RoadmapHandler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		handleError(w, r, h.log, h.tr, domain.NewValidationError("day", roadmap.MsgDayInvalid))
		return
	}

	rm, err := h.svc.ToggleDay(r.Context(), day)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	h.writeRoadmap(w, r, rm)
}

// Calendar handles GET /test/learning-time/calendar?year=YYYY&month=M.
// Missing values default to the current month.
func (h *RoadmapHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, h.log, h.tr, domain.NewValidationError("month", roadmap.MsgMonthInvalid))
			return
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, h.log, h.tr, domain.NewValidationError("month", roadmap.MsgMonthInvalid))
			return
		}
		month = n
	}

	cal, err := h.svc.Calendar(r.Context(), year, month)
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", cal)
}

func (h *RoadmapHandler) writeRoadmap(w http.ResponseWriter, r *http.Request, rm *domain.Roadmap) {
	today, err := h.svc.LessonForDate(r.Context(), h.now())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", roadmapResponse{
		Roadmap:  rm,
		Progress: roadmap.Progress(rm),
		Today:    today,
	})
}
