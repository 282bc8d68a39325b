package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/model"
)

// detailPage is the device detail view model.
type detailPage struct {
	Device model.Device
}

// ShowDevice renders the device detail page and caches the record in the
// session so the edit page can prefill without another fetch.
func (h *Handler) ShowDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := h.findDevice(r, id)
	if !ok {
		h.redirectError(w, r, "/devices", "That device is no longer in the list")
		return
	}

	if err := h.sessions.SetSelectedDevice(w, r, d); err != nil {
		h.logger.Printf("snapshot save %s: %v", id, err)
	}

	p := h.newPage(r, d.Brand+" "+d.Model, "devices")
	p.Data = detailPage{Device: d}
	h.render(w, "device_detail", http.StatusOK, p)
}

// CheckoutDevice marks the device checked out. Idempotent from the page's
// point of view: a device already checked out just redirects back with its
// existing exit time untouched.
func (h *Handler) CheckoutDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := h.findDevice(r, id)
	if !ok {
		h.redirectError(w, r, "/devices", "That device is no longer in the list")
		return
	}
	if d.CheckedOut() {
		h.redirectMessage(w, r, "/devices/"+id, "Device was already checked out")
		return
	}

	exitTime, err := h.backend.CheckoutDevice(h.requestContext(r), id)
	if err != nil {
		h.redirectError(w, r, "/devices/"+id, errorMessage(err))
		return
	}

	d.ExitTime = exitTime
	if err := h.sessions.SetSelectedDevice(w, r, d); err != nil {
		h.logger.Printf("snapshot save %s: %v", id, err)
	}
	h.redirectMessage(w, r, "/devices/"+id, "Device checked out")
}

// MarkFrequent promotes a computer into the frequent collection,
// re-attaching its photo when it can still be fetched.
func (h *Handler) MarkFrequent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := h.findDevice(r, id)
	if !ok {
		h.redirectError(w, r, "/devices", "That device is no longer in the list")
		return
	}
	if d.Kind != model.KindComputer {
		h.redirectError(w, r, "/devices/"+id, "Only computers can be marked frequent")
		return
	}
	if d.IsFrequent {
		h.redirectMessage(w, r, "/devices/"+id, "Computer is already frequent")
		return
	}

	ctx := h.requestContext(r)
	photo := h.backend.FetchPhoto(ctx, d.PhotoURL)
	if _, err := h.backend.MarkComputerFrequent(ctx, d, photo); err != nil {
		h.redirectError(w, r, "/devices/"+id, errorMessage(err))
		return
	}

	d.IsFrequent = true
	if err := h.sessions.SetSelectedDevice(w, r, d); err != nil {
		h.logger.Printf("snapshot save %s: %v", id, err)
	}
	h.redirectMessage(w, r, "/devices/"+id, "Computer marked as frequent")
}

// Photo proxies a stored device photo from the backend's uploads mount.
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.backend.FetchRaw(h.requestContext(r), r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(data)
}
