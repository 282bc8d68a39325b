package model

// PhotoUpload carries an uploaded photo through to the multipart check-in
// request.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ComputerCheckin is the computer check-in form input.
type ComputerCheckin struct {
	Brand        string
	Model        string
	Color        string
	OwnerName    string
	OwnerID      string
	Descriptions string
	Frequent     bool
	Photo        *PhotoUpload
}

// MedicalCheckin is the medical/biomedical device check-in form input.
type MedicalCheckin struct {
	Brand        string
	Model        string
	Serial       string
	OwnerName    string
	OwnerID      string
	Provider     string
	Descriptions string
	Category     string
	Photo        *PhotoUpload
}

// DeviceUpdate is the edit-form payload. Color and Serial are mutually
// exclusive by kind: computers carry color, medical devices carry serial.
type DeviceUpdate struct {
	ID        string     `json:"-"`
	Kind      DeviceKind `json:"-"`
	Brand     string     `json:"brand"`
	Model     string     `json:"model"`
	OwnerName string     `json:"ownerName"`
	OwnerID   string     `json:"ownerId"`
	Color     *string    `json:"color"`
	Serial    *string    `json:"serial"`
}
