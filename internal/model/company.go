package model

// Company is an external company record. Identification is a tax/business
// code, unique per company by backend convention; the client does not
// enforce uniqueness.
type Company struct {
	ID             flexString `json:"id"`
	Identification string     `json:"identification"`
	Name           string     `json:"name"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

// CompanyID returns the record id as a string regardless of wire type.
func (c Company) CompanyID() string { return c.ID.String() }

// CompanyInput is the create/update form payload.
type CompanyInput struct {
	Identification string `json:"identification"`
	Name           string `json:"name"`
}
