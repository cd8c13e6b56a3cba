// Package pages отдает HTML-страницы приложения: вход, список задач
// и страницу подписки. Шаблоны встроены в бинарник, данные страницы
// подгружают через JSON API.
package pages

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler отдает HTML-страницы приложения.
type Handler struct {
	log       *slog.Logger
	templates *template.Template
}

// New создает новый Handler, разбирая встроенные шаблоны.
func New(log *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		log:       log,
		templates: tmpl,
	}, nil
}

type pageData struct {
	Email string
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string) {
	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, pageData{Email: email}); err != nil {
		h.log.Error("failed to render page", slog.String("template", name), sl.Err(err))
	}
}

// Signin отдает страницу входа.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "signin.html")
}

// Index отдает главную страницу со списком задач.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "index.html")
}

// Subscribe отдает страницу оформления подписки.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "subscribe.html")
}
