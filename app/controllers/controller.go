package controllers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"inkwell/app/middleware"
	"inkwell/app/models"

	"github.com/gorilla/securecookie"
)

// flashCookie carries a one-shot notice shown on the next rendered page.
const flashCookie = "inkwell_flash"

// view is the root object handed to every template.
type view struct {
	User  *models.User
	Flash string
	Data  any
}

// Base bundles what every controller needs: parsed templates, the cookie
// codec for flash messages, and a logger.
type Base struct {
	templates map[string]*template.Template
	cookies   *securecookie.SecureCookie
	logger    *slog.Logger
}

func NewBase(viewsDir string, cookies *securecookie.SecureCookie, logger *slog.Logger) Base {
	return Base{
		templates: loadTemplates(viewsDir),
		cookies:   cookies,
		logger:    logger,
	}
}

// loadTemplates loads and parses all templates
func loadTemplates(viewsDir string) map[string]*template.Template {
	pages := map[string]string{
		"index":     "posts/index.html",
		"show":      "posts/show.html",
		"make-post": "posts/make-post.html",
		"register":  "auth/register.html",
		"login":     "auth/login.html",
		"about":     "pages/about.html",
		"contact":   "pages/contact.html",
	}

	layout := filepath.Join(viewsDir, "layout.html")
	templates := make(map[string]*template.Template, len(pages))
	for name, page := range pages {
		templates[name] = template.Must(template.ParseFiles(layout, filepath.Join(viewsDir, page)))
	}
	return templates
}

// render executes the named page template inside the layout, showing any
// flash queued by an earlier request.
func (b Base) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	b.renderFlash(w, r, name, b.popFlash(w, r), data)
}

// renderFlash renders with an explicit flash message. Error paths that
// re-render the submitted form use this so the message shows on the very
// response, not on whatever page loads next. The page is buffered so a
// mid-render failure never emits a partial response.
func (b Base) renderFlash(w http.ResponseWriter, r *http.Request, name, flash string, data any) {
	tmpl, ok := b.templates[name]
	if !ok {
		b.logger.Error("unknown template", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, _ := middleware.CurrentUser(r.Context())
	v := view{User: user, Flash: flash, Data: data}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		b.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	buf.WriteTo(w)
}

// setFlash queues a one-shot message for the next rendered page
func (b Base) setFlash(w http.ResponseWriter, message string) {
	encoded, err := b.cookies.Encode(flashCookie, message)
	if err != nil {
		b.logger.Error("failed to encode flash", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending flash message
func (b Base) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	var message string
	if err := b.cookies.Decode(flashCookie, cookie.Value, &message); err != nil {
		message = ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	return message
}

// sendJSON writes data as a JSON response
func (b Base) sendJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// jsonError writes an error as a JSON response with the given status
func (b Base) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
