package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/model"
	"device-checkin-web/pkg/search"
)

// auditPage is the device audit-log view model.
type auditPage struct {
	Events []model.AuditEvent
	Query  string
}

// ListAudit renders the device audit log, newest first, filtered by the
// accent-insensitive search query.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	events, err := h.backend.ListAuditEvents(h.requestContext(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		filtered := events[:0]
		for _, e := range events {
			if search.Matches(query, e.Action, e.Brand, e.Model, e.UserName, e.UserID.String()) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	p := h.newPage(r, "Audit log", "audit")
	p.Data = auditPage{Events: events, Query: query}
	h.render(w, "audit", http.StatusOK, p)
}

// MyAudit renders the current user's own activity log.
func (h *Handler) MyAudit(w http.ResponseWriter, r *http.Request) {
	rows, err := h.backend.ListMyAudit(h.requestContext(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	p := h.newPage(r, "My activity", "audit")
	p.Data = rows
	h.render(w, "audit_me", http.StatusOK, p)
}

// deletedUsersPage is the deleted-users view model.
type deletedUsersPage struct {
	Rows  []model.DeletedUserRow
	Query string
}

// DeletedUsers renders the deleted-users log. The query filter is applied
// server-side by the backend.
func (h *Handler) DeletedUsers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	rows, err := h.backend.ListDeletedUsers(h.requestContext(r), query)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	p := h.newPage(r, "Deleted users", "audit")
	p.Data = deletedUsersPage{Rows: rows, Query: query}
	h.render(w, "audit_deleted_users", http.StatusOK, p)
}

// equipmentAuditPage is the per-equipment history view model. The two
// sections fetch independently and each carries its own error, so one
// failing endpoint never blanks the other section.
type equipmentAuditPage struct {
	EquipmentID string

	Audits      []model.EquipmentAudit
	AuditsError string

	Deletions      []model.EquipmentDeletion
	DeletionsError string
}

// EquipmentAudit renders the full history of one piece of equipment: its
// audit rows plus any deletion snapshots.
func (h *Handler) EquipmentAudit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := h.requestContext(r)

	data := equipmentAuditPage{EquipmentID: id}

	if audits, err := h.backend.ListEquipmentAudits(ctx, id); err != nil {
		h.logger.Printf("equipment audits %s: %v", id, err)
		data.AuditsError = errorMessage(err)
	} else {
		data.Audits = audits
	}
	if deletions, err := h.backend.ListEquipmentDeletions(ctx, id); err != nil {
		h.logger.Printf("equipment deletions %s: %v", id, err)
		data.DeletionsError = errorMessage(err)
	} else {
		data.Deletions = deletions
	}

	p := h.newPage(r, "Equipment history", "audit")
	p.Data = data
	h.render(w, "audit_equipment", http.StatusOK, p)
}
