package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/audit"
	"device-checkin-web/internal/model"
	"device-checkin-web/internal/qr"
	"device-checkin-web/pkg/search"
)

// frequentPage is the frequent-computers view model. Mode selects whether
// the cards link to the check-in or the check-out deep link.
type frequentPage struct {
	Devices []model.Device
	Mode    string
	Query   string

	// Medical is set when the type toggle selects biomedical devices,
	// which are not frequent-eligible; the page explains instead of
	// rendering codes.
	Medical bool
}

// frequentResultPage reports the outcome of a scanned deep link.
type frequentResultPage struct {
	Device   model.Device
	Action   string
	ExitTime string
}

// ListFrequent renders the frequent-computer cards with their QR deep
// links.
func (h *Handler) ListFrequent(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("type") == "medical" {
		p := h.newPage(r, "Frequent computers", "frequent")
		p.Data = frequentPage{Medical: true}
		h.render(w, "frequent", http.StatusOK, p)
		return
	}

	devices, err := h.backend.ListFrequentComputers(h.requestContext(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode != qr.ActionCheckout {
		mode = qr.ActionCheckin
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		filtered := devices[:0]
		for _, d := range devices {
			if search.Matches(query, d.Brand, d.Model, d.OwnerName, d.OwnerID, d.Color) {
				filtered = append(filtered, d)
			}
		}
		devices = filtered
	}

	p := h.newPage(r, "Frequent computers", "frequent")
	p.Data = frequentPage{Devices: devices, Mode: mode, Query: query}
	h.render(w, "frequent", http.StatusOK, p)
}

// FrequentQR performs the action a scanned QR code encodes: check the
// frequent computer in as a new entry, or check its current entry out. The
// URL is stable per device so the printed code never goes stale.
func (h *Handler) FrequentQR(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	action, id := vars["action"], vars["id"]

	switch action {
	case qr.ActionCheckin:
		h.frequentCheckin(w, r, id)
	case qr.ActionCheckout:
		h.frequentCheckout(w, r, id)
	default:
		h.NotFound(w, r)
	}
}

func (h *Handler) frequentCheckin(w http.ResponseWriter, r *http.Request, id string) {
	ctx := h.requestContext(r)

	devices, err := h.backend.ListFrequentComputers(ctx)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	var found *model.Device
	for i := range devices {
		if devices[i].ID == id {
			found = &devices[i]
			break
		}
	}
	if found == nil {
		h.redirectError(w, r, "/frequent", "That computer is not registered as frequent")
		return
	}

	photo := h.backend.FetchPhoto(ctx, found.PhotoURL)
	if photo == nil {
		photo = &model.PhotoUpload{Filename: "photo.jpg"}
	}
	created, err := h.backend.CheckInComputer(ctx, model.ComputerCheckin{
		Brand:     found.Brand,
		Model:     found.Model,
		Color:     found.Color,
		OwnerName: found.OwnerName,
		OwnerID:   found.OwnerID,
		Photo:     photo,
	})
	if err != nil {
		h.redirectError(w, r, "/frequent", errorMessage(err))
		return
	}
	created.IsFrequent = true

	h.audit.Record(audit.ActionCreate, created)

	p := h.newPage(r, "Checked in", "frequent")
	p.Data = frequentResultPage{Device: created, Action: qr.ActionCheckin}
	h.render(w, "frequent_result", http.StatusOK, p)
}

func (h *Handler) frequentCheckout(w http.ResponseWriter, r *http.Request, id string) {
	ctx := h.requestContext(r)

	d, ok := h.findDevice(r, id)
	if !ok {
		h.redirectError(w, r, "/frequent?mode=checkout", "That computer is not checked in right now")
		return
	}
	if d.CheckedOut() {
		p := h.newPage(r, "Checked out", "frequent")
		p.Message = "Device was already checked out"
		p.Data = frequentResultPage{Device: d, Action: qr.ActionCheckout, ExitTime: d.ExitTime}
		h.render(w, "frequent_result", http.StatusOK, p)
		return
	}

	exitTime, err := h.backend.CheckoutDevice(ctx, d.ID)
	if err != nil {
		h.redirectError(w, r, "/frequent?mode=checkout", errorMessage(err))
		return
	}
	d.ExitTime = exitTime

	// A stale detail snapshot would offer checkout again; refresh it.
	if snap, ok := h.sessions.SelectedDevice(r); ok && snap.ID == d.ID {
		if err := h.sessions.SetSelectedDevice(w, r, d); err != nil {
			h.logger.Printf("snapshot save %s: %v", d.ID, err)
		}
	}

	p := h.newPage(r, "Checked out", "frequent")
	p.Data = frequentResultPage{Device: d, Action: qr.ActionCheckout, ExitTime: exitTime}
	h.render(w, "frequent_result", http.StatusOK, p)
}

// QRImage renders the deep-link QR code for one frequent computer as a PNG.
func (h *Handler) QRImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action, id := q.Get("action"), q.Get("id")
	if id == "" || (action != qr.ActionCheckin && action != qr.ActionCheckout) {
		http.NotFound(w, r)
		return
	}

	origin := requestOrigin(r)
	var link string
	if action == qr.ActionCheckin {
		link = qr.CheckinURL(origin, id)
	} else {
		link = qr.CheckoutURL(origin, id)
	}

	png, err := qr.PNG(link, qr.DefaultSize)
	if err != nil {
		h.logger.Printf("qr render %s %s: %v", action, id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(png)
}

// requestOrigin rebuilds the external origin the browser used, honoring the
// forwarded-proto header a fronting proxy sets.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
