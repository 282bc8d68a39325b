package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/model"
	"device-checkin-web/pkg/search"
	"device-checkin-web/pkg/validation"
)

// ticketsPage is the support-tickets view model.
type ticketsPage struct {
	Tickets []model.Ticket
	Status  string
	Query   string
}

// ListTickets renders the support tickets, optionally filtered by status.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.backend.ListTickets(h.requestContext(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	status := r.URL.Query().Get("status")
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	filtered := tickets[:0]
	for _, t := range tickets {
		if status != "" && string(t.Status) != status {
			continue
		}
		if query != "" && !search.Matches(query, t.Title, t.Description, t.Area, t.RequestedBy) {
			continue
		}
		filtered = append(filtered, t)
	}
	tickets = filtered

	p := h.newPage(r, "Support tickets", "tickets")
	p.Data = ticketsPage{Tickets: tickets, Status: status, Query: query}
	h.render(w, "tickets", http.StatusOK, p)
}

// CreateTicket validates and submits the ticket creation form.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/tickets", "Invalid form submission")
		return
	}

	in := model.TicketInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Area:        strings.TrimSpace(r.PostFormValue("area")),
		Subarea:     strings.TrimSpace(r.PostFormValue("subarea")),
		DeviceType:  strings.TrimSpace(r.PostFormValue("deviceType")),
		DeviceID:    strings.TrimSpace(r.PostFormValue("deviceId")),
		Priority:    model.TicketPriority(r.PostFormValue("priority")),
		RequestedBy: strings.TrimSpace(r.PostFormValue("requestedBy")),
	}
	if problems := validation.ValidateTicketInput(&in); len(problems) > 0 {
		h.redirectError(w, r, "/tickets", strings.Join(problems, "; "))
		return
	}

	if err := h.backend.CreateTicket(h.requestContext(r), in); err != nil {
		h.redirectError(w, r, "/tickets", errorMessage(err))
		return
	}
	h.redirectMessage(w, r, "/tickets", "Ticket created")
}

// UpdateTicketStatus moves a ticket through its workflow.
func (h *Handler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/tickets", "Invalid form submission")
		return
	}

	id := mux.Vars(r)["id"]
	status := model.TicketStatus(r.PostFormValue("status"))
	switch status {
	case model.TicketOpen, model.TicketInProgress, model.TicketClosed:
	default:
		h.redirectError(w, r, "/tickets", "Unknown ticket status")
		return
	}

	if err := h.backend.UpdateTicketStatus(h.requestContext(r), id, status); err != nil {
		h.redirectError(w, r, "/tickets", errorMessage(err))
		return
	}
	h.redirectMessage(w, r, "/tickets", "Ticket updated")
}

// DeleteTicket removes a ticket.
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.backend.DeleteTicket(h.requestContext(r), id); err != nil {
		h.redirectError(w, r, "/tickets", errorMessage(err))
		return
	}
	h.redirectMessage(w, r, "/tickets", "Ticket deleted")
}
