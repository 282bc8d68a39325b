package model

// TicketStatus is the support ticket workflow state. Transitions are
// monotonic only by convention; the UI permits any transition.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketClosed     TicketStatus = "CLOSED"
)

// TicketPriority is the support ticket priority.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// Ticket is a support ticket record, optionally linked to a device.
type Ticket struct {
	ID          flexString     `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Area        string         `json:"area"`
	Subarea     string         `json:"subarea,omitempty"`
	DeviceType  string         `json:"deviceType,omitempty"`
	DeviceID    flexString     `json:"deviceId,omitempty"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	RequestedBy string         `json:"requestedBy,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// TicketID returns the record id as a string regardless of wire type.
func (t Ticket) TicketID() string { return t.ID.String() }

// TicketInput is the ticket creation payload.
type TicketInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Area        string         `json:"area"`
	Subarea     string         `json:"subarea,omitempty"`
	DeviceType  string         `json:"deviceType,omitempty"`
	DeviceID    string         `json:"deviceId,omitempty"`
	Priority    TicketPriority `json:"priority"`
	RequestedBy string         `json:"requestedBy,omitempty"`
}

// StatusLabel renders a ticket status for tables.
func StatusLabel(s TicketStatus) string {
	switch s {
	case TicketOpen:
		return "Open"
	case TicketInProgress:
		return "In progress"
	case TicketClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// PriorityLabel renders a ticket priority for tables.
func PriorityLabel(p TicketPriority) string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}
