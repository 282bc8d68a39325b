// Package session wraps the cookie session: the signed-in flag, the
// optional backend bearer token, and the short-lived selected-device
// snapshot passed between the list, detail and edit pages.
package session

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"device-checkin-web/internal/model"
)

const (
	sessionName = "device-checkin-session"

	keyAuthenticated  = "authenticated"
	keyToken          = "token"
	keySelectedDevice = "selectedDevice"
)

// Manager reads and writes the application session.
type Manager struct {
	store sessions.Store
}

// NewManager creates a Manager backed by a cookie store signed with secret.
func NewManager(secret []byte) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   12 * 60 * 60,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// Get never fails fatally for cookie stores; a bad cookie yields a
	// fresh session, which is the tolerate-stale behavior we want.
	s, _ := m.store.Get(r, sessionName)
	return s
}

// IsAuthenticated reports the client-side logged-in flag. The backend
// remains the source of truth for identity; this only gates page access.
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	s := m.get(r)
	authenticated, ok := s.Values[keyAuthenticated].(bool)
	return ok && authenticated
}

// SignIn marks the session authenticated and stores the optional bearer
// token.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, token string) error {
	s := m.get(r)
	s.Values[keyAuthenticated] = true
	if token != "" {
		s.Values[keyToken] = token
	}
	return s.Save(r, w)
}

// SignOut clears the whole session, selected device included.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Values = map[interface{}]interface{}{}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// Token returns the stored bearer token, empty when absent.
func (m *Manager) Token(r *http.Request) string {
	s := m.get(r)
	token, _ := s.Values[keyToken].(string)
	return token
}

// SelectedDevice returns the cached device snapshot passed between the
// list, detail and edit pages. The cache is advisory: callers must handle
// a false return by re-fetching or redirecting.
func (m *Manager) SelectedDevice(r *http.Request) (model.Device, bool) {
	s := m.get(r)
	raw, ok := s.Values[keySelectedDevice].(string)
	if !ok || raw == "" {
		return model.Device{}, false
	}
	var d model.Device
	if err := json.Unmarshal([]byte(raw), &d); err != nil || d.ID == "" {
		return model.Device{}, false
	}
	return d, true
}

// SetSelectedDevice stores the device snapshot for the detail/edit flow.
func (m *Manager) SetSelectedDevice(w http.ResponseWriter, r *http.Request, d model.Device) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s := m.get(r)
	s.Values[keySelectedDevice] = string(raw)
	return s.Save(r, w)
}

// ClearSelectedDevice drops the snapshot; called when navigating away from
// the device flow so stale state cannot leak into a later visit.
func (m *Manager) ClearSelectedDevice(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, keySelectedDevice)
	return s.Save(r, w)
}
