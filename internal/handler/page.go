package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/starboard/internal/board"
	"github.com/dukerupert/starboard/internal/model"
	"github.com/dukerupert/starboard/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"stars": func(score int) string {
		if score < 0 {
			score = 0
		}
		if score > model.MaxScore {
			score = model.MaxScore
		}
		return strings.Repeat("★", score) + strings.Repeat("☆", model.MaxScore-score)
	},
	"rank": func(i int) int { return i + 1 },
	"when": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"scores": func() []int {
		scores := make([]int, 0, model.MaxScore-model.MinScore+1)
		for s := model.MaxScore; s >= model.MinScore; s-- {
			scores = append(scores, s)
		}
		return scores
	},
}

// PageHandler renders the single HTML view.
type PageHandler struct {
	svc       *service.Service
	templates *template.Template
	logger    *slog.Logger
}

func NewPageHandler(svc *service.Service, logger *slog.Logger) *PageHandler {
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	return &PageHandler{svc: svc, templates: tmpl, logger: logger}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	members, err := h.svc.Members()
	if err != nil {
		h.logger.Error("load members", "error", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}
	entries, err := h.svc.Board()
	if err != nil {
		h.logger.Error("build board", "error", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}
	ratings, err := h.svc.Ratings()
	if err != nil {
		h.logger.Error("load ratings", "error", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	messages, err := h.svc.Messages()
	if err != nil {
		h.logger.Error("load messages", "error", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	h.render(w, "index.html", map[string]any{
		"Title":    "Starboard",
		"Members":  members,
		"Board":    entries,
		"Ratings":  ratings,
		"Messages": messages,
		"Version":  boardVersion(entries),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// boardVersion matches the version carried by websocket board updates, so the
// page ignores updates older than what it rendered.
func boardVersion(entries []board.Entry) int {
	n := 0
	for _, e := range entries {
		n += e.RatingCount
	}
	return n
}
