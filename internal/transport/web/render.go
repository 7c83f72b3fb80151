package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/i18n"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/internal/service/habit"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome      = "home.html"
	pageLogin     = "login.html"
	pageRegister  = "register.html"
	pageDashboard = "dashboard.html"
	pageSettings  = "settings.html"
	pageHabit     = "habit.html"
	pageRoadmap   = "roadmap.html"
)

var pageNames = []string{
	pageHome, pageLogin, pageRegister, pageDashboard, pageSettings, pageHabit, pageRoadmap,
}

// view is the data every page template receives.
type view struct {
	Locale        domain.Locale
	Path          string
	Title         string
	Authenticated bool
	Toasts        []notify.Notification
	Form          map[string]string
	Errors        map[string]string
	User          *domain.User
	Habit         *habitView
	Roadmap       *roadmapView
}

type habitView struct {
	Plan       *habit.DayPlan
	Motivation *habit.Motivation
}

type roadmapView struct {
	Progress int
	Today    *domain.RoadmapDay
	Days     []roadmapDayView
}

type roadmapDayView struct {
	Day   int
	Topic string
	Date  string
	Done  bool
}

// renderer holds one parsed template set per page, each sharing the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(tr translator) (*renderer, error) {
	funcs := template.FuncMap{
		"t": tr.T,
		"tf": func(locale domain.Locale, key string, pairs ...string) string {
			return tr.Format(locale, key, pairs...)
		},
		"switchPath": i18n.SwitchPath,
		"locales":    func() []domain.Locale { return domain.Locales },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &renderer{pages: pages}, nil
}

// render executes the page into a buffer first so a template failure never
// leaves a half-written response.
func (rn *renderer) render(w http.ResponseWriter, status int, name string, v *view) error {
	tmpl, ok := rn.pages[name]
	if !ok {
		return fmt.Errorf("web: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("web: render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
