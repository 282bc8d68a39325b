package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/audit"
	"device-checkin-web/internal/model"
	"device-checkin-web/pkg/search"
)

// devicesPage is the entered-devices list view model.
type devicesPage struct {
	Devices []model.Device
	Query   string
	Kind    string
	Total   int
}

// ListDevices renders the entered-devices table: the merged computer and
// biomedical collections with the frequent flag joined in, filtered by the
// accent-insensitive search query.
func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.backend.ListEnteredDevices(h.requestContext(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	kind := r.URL.Query().Get("kind")

	filtered := make([]model.Device, 0, len(devices))
	for _, d := range devices {
		if kind != "" && string(d.Kind) != kind {
			continue
		}
		if query != "" && !search.Matches(query, d.Brand, d.Model, d.OwnerName, d.OwnerID, d.Serial, d.Color, d.FrequentLabel()) {
			continue
		}
		filtered = append(filtered, d)
	}

	p := h.newPage(r, "Devices inside", "devices")
	p.Data = devicesPage{
		Devices: filtered,
		Query:   query,
		Kind:    kind,
		Total:   len(devices),
	}
	h.render(w, "devices", http.StatusOK, p)
}

// DeleteDevice removes a device record. The form carries the row's display
// fields so the DELETE audit event describes the record without a re-fetch.
func (h *Handler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/devices", "Invalid form submission")
		return
	}

	id := mux.Vars(r)["id"]
	kind := model.DeviceKind(r.PostFormValue("kind"))
	if kind != model.KindComputer && kind != model.KindMedical {
		h.redirectError(w, r, "/devices", "Unknown device type")
		return
	}

	if err := h.backend.DeleteDevice(h.requestContext(r), kind, id); err != nil {
		h.redirectError(w, r, "/devices", errorMessage(err))
		return
	}

	h.audit.Record(audit.ActionDelete, model.Device{
		ID:        id,
		Kind:      kind,
		Brand:     r.PostFormValue("brand"),
		Model:     r.PostFormValue("model"),
		OwnerName: r.PostFormValue("ownerName"),
		OwnerID:   r.PostFormValue("ownerId"),
	})

	// The record is gone from any snapshot too.
	if d, ok := h.sessions.SelectedDevice(r); ok && d.ID == id {
		_ = h.sessions.ClearSelectedDevice(w, r)
	}
	h.redirectMessage(w, r, "/devices", "Device record deleted")
}

// findDevice resolves a device by id: the session snapshot when it matches,
// otherwise a fresh fetch of the merged list. The snapshot is advisory; a
// stale or missing one is never an error.
func (h *Handler) findDevice(r *http.Request, id string) (model.Device, bool) {
	if d, ok := h.sessions.SelectedDevice(r); ok && d.ID == id {
		return d, true
	}
	devices, err := h.backend.ListEnteredDevices(h.requestContext(r))
	if err != nil {
		h.logger.Printf("device lookup %s: %v", id, err)
		return model.Device{}, false
	}
	for _, d := range devices {
		if d.ID == id {
			return d, true
		}
	}
	return model.Device{}, false
}
