package handler

import (
	"fmt"
	"html/template"
	"net/http"

	apperrors "device-checkin-web/pkg/errors"
	"device-checkin-web/web"
)

// pageFiles are the per-page templates. Each is parsed together with the
// layout and nav partials into its own template set.
var pageFiles = []string{
	"login", "register", "forgot_password",
	"devices", "device_detail", "device_edit",
	"checkin", "checkin_computer", "checkin_medical",
	"frequent", "frequent_result",
	"companies", "tickets",
	"audit", "audit_me", "audit_deleted_users", "audit_equipment",
	"error",
}

type templateSet struct {
	pages map[string]*template.Template
}

func mustParseTemplates() *templateSet {
	ts := &templateSet{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, name := range pageFiles {
		t, err := template.ParseFS(web.Templates,
			"templates/layout.html",
			"templates/nav.html",
			"templates/"+name+".html",
		)
		if err != nil {
			panic(fmt.Sprintf("parse template %s: %v", name, err))
		}
		ts.pages[name] = t
	}
	return ts
}

// page is the data envelope every template receives.
type page struct {
	Title         string
	Active        string
	Authenticated bool
	Error         string
	Message       string

	RecaptchaSiteKey string

	Data interface{}
}

// newPage builds the envelope, picking up flash-style error/msg query
// parameters left by a prior redirect.
func (h *Handler) newPage(r *http.Request, title, active string) page {
	q := r.URL.Query()
	return page{
		Title:            title,
		Active:           active,
		Authenticated:    h.sessions.IsAuthenticated(r),
		Error:            q.Get("error"),
		Message:          q.Get("msg"),
		RecaptchaSiteKey: h.config.RecaptchaSiteKey,
	}
}

// render executes the named page template. A render failure after partial
// output cannot be recovered; it is logged and the connection left as-is.
func (h *Handler) render(w http.ResponseWriter, name string, status int, p page) {
	t, ok := h.templates.pages[name]
	if !ok {
		h.logger.Printf("unknown template %q", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", p); err != nil {
		h.logger.Printf("render %s: %v", name, err)
	}
}

// renderError shows the standalone error page with the message extracted
// from err. Backend error bodies pass through verbatim.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.StatusCode > 0 {
		status = appErr.StatusCode
	}
	h.logger.Printf("page error: %v", err)
	p := h.newPage(r, "Error", "")
	p.Error = apperrors.Message(err)
	h.render(w, "error", status, p)
}

// errorMessage extracts the user-facing text from err.
func errorMessage(err error) string {
	return apperrors.Message(err)
}

// NotFound is the catch-all for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Not found", "")
	p.Error = "The page you requested does not exist."
	h.render(w, "error", http.StatusNotFound, p)
}
