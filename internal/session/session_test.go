package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-checkin-web/internal/model"
)

func newTestManager() *Manager {
	return NewManager([]byte("test-secret-0123456789abcdef0123"))
}

// roundTrip replays the cookies a previous response set onto a new request.
func roundTrip(t *testing.T, w *httptest.ResponseRecorder, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSignInSignOut(t *testing.T) {
	m := newTestManager()

	fresh := httptest.NewRequest(http.MethodGet, "/devices", nil)
	assert.False(t, m.IsAuthenticated(fresh))
	assert.Empty(t, m.Token(fresh))

	w := httptest.NewRecorder()
	require.NoError(t, m.SignIn(w, fresh, "tok-1"))

	signedIn := roundTrip(t, w, "/devices")
	assert.True(t, m.IsAuthenticated(signedIn))
	assert.Equal(t, "tok-1", m.Token(signedIn))

	w2 := httptest.NewRecorder()
	require.NoError(t, m.SignOut(w2, signedIn))

	signedOut := httptest.NewRequest(http.MethodGet, "/devices", nil)
	assert.False(t, m.IsAuthenticated(signedOut))
}

func TestSelectedDeviceRoundTrip(t *testing.T) {
	m := newTestManager()
	d := model.Device{ID: "comp-1", Kind: model.KindComputer, Brand: "Dell", Model: "XPS"}

	r := httptest.NewRequest(http.MethodGet, "/devices/comp-1", nil)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetSelectedDevice(w, r, d))

	next := roundTrip(t, w, "/devices/comp-1/edit")
	got, ok := m.SelectedDevice(next)
	require.True(t, ok)
	assert.Equal(t, "comp-1", got.ID)
	assert.Equal(t, "Dell", got.Brand)

	w2 := httptest.NewRecorder()
	require.NoError(t, m.ClearSelectedDevice(w2, next))

	cleared := roundTrip(t, w2, "/devices")
	_, ok = m.SelectedDevice(cleared)
	assert.False(t, ok)
}

func TestSelectedDeviceAbsent(t *testing.T) {
	m := newTestManager()
	r := httptest.NewRequest(http.MethodGet, "/devices", nil)
	_, ok := m.SelectedDevice(r)
	assert.False(t, ok, "no snapshot on a fresh session")
}

func TestBadCookieYieldsFreshSession(t *testing.T) {
	m := newTestManager()
	r := httptest.NewRequest(http.MethodGet, "/devices", nil)
	r.AddCookie(&http.Cookie{Name: "device-checkin-session", Value: "not-a-valid-cookie"})

	assert.False(t, m.IsAuthenticated(r))
	_, ok := m.SelectedDevice(r)
	assert.False(t, ok)
}
