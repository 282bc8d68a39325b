package model

// AuditEvent is an immutable log record of a create/update/delete action.
// Append-only from the client's perspective; never edited or deleted here.
type AuditEvent struct {
	ID        flexString `json:"id"`
	Action    string     `json:"action"`
	Kind      string     `json:"kind"`
	DeviceID  flexString `json:"deviceId"`
	Brand     string     `json:"brand,omitempty"`
	Model     string     `json:"model,omitempty"`
	UserName  string     `json:"userName,omitempty"`
	UserID    flexString `json:"userId,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// EventID returns the record id as a string regardless of wire type.
func (e AuditEvent) EventID() string { return e.ID.String() }

// ActionLabel renders an audit action for tables.
func (e AuditEvent) ActionLabel() string {
	switch e.Action {
	case "CREATE":
		return "Created"
	case "UPDATE":
		return "Updated"
	case "DELETE":
		return "Deleted"
	default:
		return e.Action
	}
}

// MyAuditRow is a row of the current user's activity log.
type MyAuditRow struct {
	ID        flexString `json:"id"`
	Action    string     `json:"action"`
	Detail    string     `json:"detail,omitempty"`
	IP        string     `json:"ip,omitempty"`
	UserAgent string     `json:"userAgent,omitempty"`
	CreatedAt string     `json:"createdAt"`
}

// DeletedUserRow is a row of the deleted-users audit log.
type DeletedUserRow struct {
	ID            flexString `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	ActorUsername string     `json:"actorUsername,omitempty"`
	IP            string     `json:"ip,omitempty"`
	UserAgent     string     `json:"userAgent,omitempty"`
	DeletedAt     string     `json:"deletedAt"`
}

// EquipmentAudit is one audit row for a specific piece of equipment.
type EquipmentAudit struct {
	ID          flexString `json:"id"`
	EquipmentID flexString `json:"equipmentId"`
	ActorUserID flexString `json:"actorUserId,omitempty"`
	Action      string     `json:"action"`
	Detail      string     `json:"detail,omitempty"`
	IP          string     `json:"ip,omitempty"`
	UserAgent   string     `json:"userAgent,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}

// EquipmentDeletion is one deletion record for a specific piece of
// equipment, carrying the snapshot taken when the record was removed.
type EquipmentDeletion struct {
	ID                      flexString `json:"id"`
	EquipmentID             flexString `json:"equipmentId"`
	InternalCode            string     `json:"internalCode,omitempty"`
	EquipmentType           string     `json:"equipmentType,omitempty"`
	Brand                   string     `json:"brand,omitempty"`
	Model                   string     `json:"model,omitempty"`
	Serial                  string     `json:"serial,omitempty"`
	ExternalCompanyName     string     `json:"externalCompanyName,omitempty"`
	DeliveryResponsibleName string     `json:"deliveryResponsibleName,omitempty"`
	Status                  string     `json:"status,omitempty"`
	CheckinAt               string     `json:"checkinAt,omitempty"`
	CheckoutAt              string     `json:"checkoutAt,omitempty"`
	Notes                   string     `json:"notes,omitempty"`
	CreatedAt               string     `json:"createdAt"`
}
