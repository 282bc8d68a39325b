// Package handler renders the HTML pages and drives the backend client.
// Every page follows the same shape: gather form/query input, call the
// backend, record the audit event where one applies, render or redirect.
package handler

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"device-checkin-web/internal/audit"
	"device-checkin-web/internal/backend"
	"device-checkin-web/internal/config"
	"device-checkin-web/internal/session"
)

// Handler holds the shared dependencies of all page handlers.
type Handler struct {
	backend  *backend.Client
	audit    *audit.Recorder
	sessions *session.Manager
	config   *config.Config
	logger   *log.Logger

	templates *templateSet
}

// NewHandler creates a Handler with the given dependencies. Panics when the
// embedded templates fail to parse; that is a build defect, not a runtime
// condition.
func NewHandler(client *backend.Client, recorder *audit.Recorder, sessions *session.Manager, cfg *config.Config, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		backend:   client,
		audit:     recorder,
		sessions:  sessions,
		config:    cfg,
		logger:    logger,
		templates: mustParseTemplates(),
	}
}

// requestContext attaches the session's backend credentials to the request
// context so the client can forward them.
func (h *Handler) requestContext(r *http.Request) context.Context {
	creds := backend.Credentials{
		Token:   h.sessions.Token(r),
		Cookies: r.Cookies(),
	}
	return backend.WithCredentials(r.Context(), creds)
}

// Health reports whether the backend is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.backend.IsHealthy(r.Context()) {
		http.Error(w, "backend unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// redirect issues a see-other redirect, the pattern every POST handler ends
// with so refreshes never resubmit forms.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectError redirects carrying a user-facing error message.
func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request, target, message string) {
	h.redirect(w, r, withParam(target, "error", message))
}

// redirectMessage redirects carrying a user-facing success message.
func (h *Handler) redirectMessage(w http.ResponseWriter, r *http.Request, target, message string) {
	h.redirect(w, r, withParam(target, "msg", message))
}

func withParam(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

// safeNext returns the post-login destination, restricted to local paths so
// the next parameter cannot be used as an open redirect.
func safeNext(raw string) string {
	if raw == "" || raw[0] != '/' || (len(raw) > 1 && raw[1] == '/') {
		return "/devices"
	}
	return raw
}
