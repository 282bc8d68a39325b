package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/audit"
	"device-checkin-web/internal/model"
	"device-checkin-web/pkg/validation"
)

// editPage is the edit-form view model.
type editPage struct {
	Device model.Device
}

// ShowEdit renders the edit form prefilled from the session snapshot, or
// from a fresh fetch when the snapshot is gone.
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := h.findDevice(r, id)
	if !ok {
		h.redirectError(w, r, "/devices", "That device is no longer in the list")
		return
	}

	p := h.newPage(r, "Edit "+d.Brand+" "+d.Model, "devices")
	p.Data = editPage{Device: d}
	h.render(w, "device_edit", http.StatusOK, p)
}

// UpdateDevice validates and submits the edit form, then records the UPDATE
// audit event with the new values.
func (h *Handler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/devices", "Invalid form submission")
		return
	}

	id := mux.Vars(r)["id"]
	d, ok := h.findDevice(r, id)
	if !ok {
		h.redirectError(w, r, "/devices", "That device is no longer in the list")
		return
	}

	in := model.DeviceUpdate{
		ID:        id,
		Kind:      d.Kind,
		Brand:     strings.TrimSpace(r.PostFormValue("brand")),
		Model:     strings.TrimSpace(r.PostFormValue("model")),
		OwnerName: strings.TrimSpace(r.PostFormValue("ownerName")),
		OwnerID:   strings.TrimSpace(r.PostFormValue("ownerId")),
	}
	if d.Kind == model.KindComputer {
		color := strings.TrimSpace(r.PostFormValue("color"))
		in.Color = &color
	} else {
		serial := strings.TrimSpace(r.PostFormValue("serial"))
		in.Serial = &serial
	}

	if problems := validation.ValidateDeviceUpdate(&in); len(problems) > 0 {
		d.Brand, d.Model, d.OwnerName, d.OwnerID = in.Brand, in.Model, in.OwnerName, in.OwnerID
		p := h.newPage(r, "Edit "+d.Brand+" "+d.Model, "devices")
		p.Error = strings.Join(problems, "; ")
		p.Data = editPage{Device: d}
		h.render(w, "device_edit", http.StatusOK, p)
		return
	}

	if err := h.backend.UpdateDevice(h.requestContext(r), in); err != nil {
		p := h.newPage(r, "Edit "+d.Brand+" "+d.Model, "devices")
		p.Error = errorMessage(err)
		p.Data = editPage{Device: d}
		h.render(w, "device_edit", http.StatusOK, p)
		return
	}

	d.Brand, d.Model, d.OwnerName, d.OwnerID = in.Brand, in.Model, in.OwnerName, in.OwnerID
	if in.Color != nil {
		d.Color = *in.Color
	}
	if in.Serial != nil {
		d.Serial = *in.Serial
	}
	h.audit.Record(audit.ActionUpdate, d)

	if err := h.sessions.SetSelectedDevice(w, r, d); err != nil {
		h.logger.Printf("snapshot save %s: %v", id, err)
	}
	h.redirectMessage(w, r, "/devices/"+id, "Device updated")
}
