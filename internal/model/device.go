package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DeviceKind distinguishes the two tracked device families.
type DeviceKind string

const (
	KindComputer DeviceKind = "computer"
	KindMedical  DeviceKind = "medical"
)

// Device is the canonical view of a checked-in device. The backend owns the
// record; this is the client-side shape every page consumes after
// normalization.
type Device struct {
	ID        string     `json:"id"`
	Kind      DeviceKind `json:"kind"`
	Brand     string     `json:"brand"`
	Model     string     `json:"model"`
	OwnerName string     `json:"userName"`
	OwnerID   string     `json:"userId"`

	// Color is set for computers, Serial for medical devices.
	Color  string `json:"color,omitempty"`
	Serial string `json:"serial,omitempty"`

	EntryTime string `json:"entryTime"`
	// ExitTime is empty until the device is checked out. The transition is
	// one-way: once set it never reverts.
	ExitTime string `json:"exitTime,omitempty"`

	PhotoURL   string `json:"photoUrl,omitempty"`
	IsFrequent bool   `json:"isFrequent"`
}

// CheckedOut reports whether the device already has an exit time.
func (d Device) CheckedOut() bool {
	return d.ExitTime != ""
}

// ExitDisplay renders the exit time for tables, with an em dash for devices
// still inside the facility.
func (d Device) ExitDisplay() string {
	if d.ExitTime == "" {
		return "—"
	}
	return d.ExitTime
}

// FrequentLabel mirrors the badge text shown on computer cards. Medical
// devices are not frequent-eligible and get no label.
func (d Device) FrequentLabel() string {
	if d.Kind != KindComputer {
		return ""
	}
	if d.IsFrequent {
		return "frequent computer"
	}
	return "non-frequent computer"
}

// flexString absorbs backend id fields that arrive as JSON strings, numbers
// or null depending on the record's era.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string { return string(f) }

// RawDevice is the wire shape of a device record. Field names vary by
// backend era, so every historical candidate is declared here and resolved
// once at the network boundary; nothing downstream sees a raw record.
type RawDevice struct {
	ID        flexString `json:"id"`
	Brand     string     `json:"brand"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	OwnerName string     `json:"ownerName"`
	OwnerID   flexString `json:"ownerId"`
	Color     string     `json:"color"`
	Serial    string     `json:"serial"`
	Photo     string     `json:"photo"`

	CheckinAt       string `json:"checkinAt"`
	CheckInAt       string `json:"checkInAt"`
	EntryTime       string `json:"entryTime"`
	CreatedAt       string `json:"createdAt"`
	CreatedAtSnake  string `json:"created_at"`
	UpdatedAt       string `json:"updatedAt"`
	UpdatedAtSnake  string `json:"updated_at"`
	CheckoutAt      string `json:"checkoutAt"`
	CheckOutAt      string `json:"checkOutAt"`
	ExitTime        string `json:"exitTime"`
	ExitTimeSnake   string `json:"exit_time"`
	ExitAt          string `json:"exit_at"`
	IsFrequentField *bool  `json:"isFrequent"`
}

// entryCandidates returns the entry timestamp fields in precedence order.
func (r RawDevice) entryCandidates() []string {
	return []string{
		r.CheckinAt, r.CheckInAt, r.EntryTime,
		r.CreatedAt, r.CreatedAtSnake,
		r.UpdatedAt, r.UpdatedAtSnake,
	}
}

// exitCandidates returns the explicit checkout fields in precedence order.
// updatedAt is deliberately absent: an update is not a checkout, and a
// device with no checkout field must render as still inside.
func (r RawDevice) exitCandidates() []string {
	return []string{
		r.CheckoutAt, r.CheckOutAt, r.ExitTime, r.ExitTimeSnake, r.ExitAt,
	}
}

// ResolvedEntryTime picks the first present entry timestamp and formats it
// for display; "—" when the record carries none.
func (r RawDevice) ResolvedEntryTime() string {
	for _, raw := range r.entryCandidates() {
		if raw != "" {
			return FormatClockTime(raw)
		}
	}
	return "—"
}

// ResolvedExitTime picks the first explicit checkout timestamp; empty when
// the device has not been checked out.
func (r RawDevice) ResolvedExitTime() string {
	for _, raw := range r.exitCandidates() {
		if raw != "" {
			return FormatClockTime(raw)
		}
	}
	return ""
}

// timestampLayouts covers the formats observed across backend eras.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// FormatClockTime renders a backend timestamp as HH:MM local time. Values
// that fail to parse are shown verbatim rather than dropped.
func FormatClockTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Local().Format("15:04")
		}
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).Local().Format("15:04")
	}
	return raw
}

// BuildPhotoURL canonicalizes the photo path variants the backend has used
// over time: absolute URLs and /uploads/ paths pass through, bare filenames
// and uploads/ prefixes become /uploads/<name>.
func BuildPhotoURL(raw string) string {
	path := strings.TrimSpace(raw)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/uploads/") {
		return path
	}
	path = strings.TrimLeft(strings.TrimPrefix(path, "uploads/"), "/")
	return "/uploads/" + path
}

// ComputerFromRaw normalizes a raw computer record. frequentIDs is the id
// set from the frequent-computers collection, the single source of truth
// for the frequent flag.
func ComputerFromRaw(raw RawDevice, frequentIDs map[string]bool) Device {
	return Device{
		ID:         raw.ID.String(),
		Kind:       KindComputer,
		Brand:      fallback(raw.Brand, "Unknown brand"),
		Model:      fallback(raw.Model, "Unknown model"),
		OwnerName:  fallback(raw.OwnerName, "Unknown owner"),
		OwnerID:    raw.OwnerID.String(),
		Color:      raw.Color,
		EntryTime:  raw.ResolvedEntryTime(),
		ExitTime:   raw.ResolvedExitTime(),
		PhotoURL:   BuildPhotoURL(raw.Photo),
		IsFrequent: frequentIDs[raw.ID.String()],
	}
}

// MedicalFromRaw normalizes a raw medical device record. Provider doubles
// as brand for records that never carried one.
func MedicalFromRaw(raw RawDevice) Device {
	brand := raw.Brand
	if brand == "" {
		brand = raw.Provider
	}
	return Device{
		ID:        raw.ID.String(),
		Kind:      KindMedical,
		Brand:     fallback(brand, "Unknown provider"),
		Model:     fallback(raw.Model, "Unknown model"),
		OwnerName: fallback(raw.OwnerName, "Unknown owner"),
		OwnerID:   raw.OwnerID.String(),
		Serial:    raw.Serial,
		EntryTime: raw.ResolvedEntryTime(),
		ExitTime:  raw.ResolvedExitTime(),
		PhotoURL:  BuildPhotoURL(raw.Photo),
	}
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
