package backend

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"device-checkin-web/internal/model"
)

// Audit query endpoints. All read-only; appending happens through
// PostAuditEvent.
const (
	pathAudit              = "/audit"
	pathAuditMe            = "/audit/me"
	pathAuditDeletedUsers  = "/audit/users/deleted"
	pathEquipmentAudits    = "/equipment/audits"
	pathEquipmentDeletions = "/equipment/deletions"
)

// AuditPayload is the append-only audit record the client emits after
// create/update/delete actions.
type AuditPayload struct {
	Action    string `json:"action"`
	Kind      string `json:"kind"`
	DeviceID  string `json:"deviceId"`
	Brand     string `json:"brand,omitempty"`
	Model     string `json:"model,omitempty"`
	UserName  string `json:"userName,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Timestamp string `json:"timestamp"`
}

// PostAuditEvent appends one audit record. Callers treat this as
// best-effort; the audit recorder owns the swallow-on-failure semantics.
func (c *Client) PostAuditEvent(ctx context.Context, payload AuditPayload) error {
	_, err := c.sendJSON(ctx, http.MethodPost, pathAudit, payload, nil)
	return err
}

// ListAuditEvents fetches the device audit log, newest first.
func (c *Client) ListAuditEvents(ctx context.Context) ([]model.AuditEvent, error) {
	var events []model.AuditEvent
	if err := c.getJSON(ctx, pathAudit, &events); err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})
	return events, nil
}

// ListMyAudit fetches the current user's activity log.
func (c *Client) ListMyAudit(ctx context.Context) ([]model.MyAuditRow, error) {
	var rows []model.MyAuditRow
	if err := c.getJSON(ctx, pathAuditMe, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDeletedUsers fetches the deleted-users audit log, optionally filtered
// by a backend-side search term.
func (c *Client) ListDeletedUsers(ctx context.Context, query string) ([]model.DeletedUserRow, error) {
	path := pathAuditDeletedUsers
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var rows []model.DeletedUserRow
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListEquipmentAudits fetches the audit rows for one piece of equipment.
func (c *Client) ListEquipmentAudits(ctx context.Context, equipmentID string) ([]model.EquipmentAudit, error) {
	var rows []model.EquipmentAudit
	path := pathEquipmentAudits + "?equipmentId=" + url.QueryEscape(equipmentID)
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListEquipmentDeletions fetches the deletion records for one piece of
// equipment.
func (c *Client) ListEquipmentDeletions(ctx context.Context, equipmentID string) ([]model.EquipmentDeletion, error) {
	var rows []model.EquipmentDeletion
	path := pathEquipmentDeletions + "?equipmentId=" + url.QueryEscape(equipmentID)
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
