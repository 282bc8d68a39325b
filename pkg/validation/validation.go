// Package validation holds the client-side form rules. Validation runs
// before any network call; a failing form never produces a partial
// submission.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"device-checkin-web/internal/model"
)

// Minimum field lengths for the computer check-in form.
const (
	MinBrandLength     = 2
	MinColorLength     = 3
	MinOwnerNameLength = 5
	MinOwnerIDLength   = 5
	MinPasswordLength  = 8
)

// ValidateRequired checks that a field is not blank.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMinLength checks presence and a minimum rune count.
func ValidateMinLength(fieldName, value string, min int) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < min {
		return fmt.Errorf("%s is required and must be at least %d characters", fieldName, min)
	}
	return nil
}

// ValidateComputerCheckin validates the computer check-in form. The rules
// mirror the form's field order so the first returned message is the first
// violated rule on screen.
func ValidateComputerCheckin(in *model.ComputerCheckin) []string {
	var errs []string

	if err := ValidateRequired("model", in.Model); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateMinLength("brand", in.Brand, MinBrandLength); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateMinLength("color", in.Color, MinColorLength); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateMinLength("owner name", in.OwnerName, MinOwnerNameLength); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateMinLength("owner identification", in.OwnerID, MinOwnerIDLength); err != nil {
		errs = append(errs, err.Error())
	}
	if in.Photo == nil || len(in.Photo.Data) == 0 {
		errs = append(errs, "a photo is required")
	}

	return errs
}

// ValidateMedicalCheckin validates the medical device check-in form.
func ValidateMedicalCheckin(in *model.MedicalCheckin) []string {
	var errs []string

	for _, f := range []struct {
		name  string
		value string
	}{
		{"brand", in.Brand},
		{"model", in.Model},
		{"owner name", in.OwnerName},
		{"owner identification", in.OwnerID},
		{"serial", in.Serial},
	} {
		if err := ValidateRequired(f.name, f.value); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if in.Photo == nil || len(in.Photo.Data) == 0 {
		errs = append(errs, "a photo is required")
	}

	return errs
}

// ValidateDeviceUpdate validates the edit form shared by both kinds.
func ValidateDeviceUpdate(in *model.DeviceUpdate) []string {
	var errs []string

	if err := ValidateRequired("brand", in.Brand); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateRequired("model", in.Model); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateRequired("owner name", in.OwnerName); err != nil {
		errs = append(errs, err.Error())
	}

	return errs
}

// ValidateCompanyInput validates the external-company form.
func ValidateCompanyInput(in *model.CompanyInput) []string {
	var errs []string

	if err := ValidateRequired("identification", in.Identification); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateRequired("name", in.Name); err != nil {
		errs = append(errs, err.Error())
	}

	return errs
}

// ValidateTicketInput validates the ticket creation form.
func ValidateTicketInput(in *model.TicketInput) []string {
	var errs []string

	if err := ValidateRequired("title", in.Title); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateRequired("area", in.Area); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateRequired("description", in.Description); err != nil {
		errs = append(errs, err.Error())
	}

	return errs
}

// ValidateNewPassword applies the forgot-password rules: minimum length and
// confirmation match.
func ValidateNewPassword(password, confirm string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
