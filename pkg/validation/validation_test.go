package validation

import (
	"strings"
	"testing"

	"device-checkin-web/internal/model"
)

func photo() *model.PhotoUpload {
	return &model.PhotoUpload{Filename: "a.jpg", Data: []byte{0x1}}
}

func TestValidateComputerCheckin(t *testing.T) {
	valid := model.ComputerCheckin{
		Brand:     "HP",
		Model:     "EliteBook",
		Color:     "Gray",
		OwnerName: "Maria Lopez",
		OwnerID:   "10203040",
		Photo:     photo(),
	}

	tests := []struct {
		name        string
		mutate      func(in *model.ComputerCheckin)
		errCount    int
		errContains string
	}{
		{
			name:     "Valid form",
			mutate:   func(in *model.ComputerCheckin) {},
			errCount: 0,
		},
		{
			name:        "Missing model",
			mutate:      func(in *model.ComputerCheckin) { in.Model = " " },
			errCount:    1,
			errContains: "model is required",
		},
		{
			name:        "Brand of one character",
			mutate:      func(in *model.ComputerCheckin) { in.Brand = "H" },
			errCount:    1,
			errContains: "brand",
		},
		{
			name:        "Color too short",
			mutate:      func(in *model.ComputerCheckin) { in.Color = "ab" },
			errCount:    1,
			errContains: "color",
		},
		{
			name:        "Owner name too short",
			mutate:      func(in *model.ComputerCheckin) { in.OwnerName = "Ana" },
			errCount:    1,
			errContains: "owner name",
		},
		{
			name:        "Owner identification too short",
			mutate:      func(in *model.ComputerCheckin) { in.OwnerID = "1234" },
			errCount:    1,
			errContains: "owner identification",
		},
		{
			name:        "Missing photo",
			mutate:      func(in *model.ComputerCheckin) { in.Photo = nil },
			errCount:    1,
			errContains: "photo",
		},
		{
			name: "Everything wrong",
			mutate: func(in *model.ComputerCheckin) {
				*in = model.ComputerCheckin{}
			},
			errCount: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs := ValidateComputerCheckin(&in)
			if len(errs) != tt.errCount {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, tt.errCount)
			}
			if tt.errContains != "" && !strings.Contains(errs[0], tt.errContains) {
				t.Errorf("error %q does not mention %q", errs[0], tt.errContains)
			}
		})
	}
}

func TestValidateComputerCheckinBrandBoundary(t *testing.T) {
	in := model.ComputerCheckin{
		Brand:     "HP",
		Model:     "EliteBook",
		Color:     "Gray",
		OwnerName: "Maria Lopez",
		OwnerID:   "10203040",
		Photo:     photo(),
	}
	if errs := ValidateComputerCheckin(&in); len(errs) != 0 {
		t.Errorf("two-character brand should pass, got %v", errs)
	}

	// One rune, two bytes: the limit counts runes
	in.Brand = "É"
	if errs := ValidateComputerCheckin(&in); len(errs) != 1 {
		t.Errorf("one-rune brand should fail exactly once, got %v", errs)
	}
}

func TestValidateMedicalCheckin(t *testing.T) {
	valid := model.MedicalCheckin{
		Brand:     "Philips",
		Model:     "IntelliVue",
		Serial:    "SN-991",
		OwnerName: "Carlos Ruiz",
		OwnerID:   "20304050",
		Photo:     photo(),
	}

	if errs := ValidateMedicalCheckin(&valid); len(errs) != 0 {
		t.Fatalf("valid form rejected: %v", errs)
	}

	missingSerial := valid
	missingSerial.Serial = ""
	errs := ValidateMedicalCheckin(&missingSerial)
	if len(errs) != 1 || !strings.Contains(errs[0], "serial") {
		t.Errorf("missing serial: got %v", errs)
	}

	missingPhoto := valid
	missingPhoto.Photo = &model.PhotoUpload{}
	errs = ValidateMedicalCheckin(&missingPhoto)
	if len(errs) != 1 || !strings.Contains(errs[0], "photo") {
		t.Errorf("empty photo: got %v", errs)
	}
}

func TestValidateDeviceUpdate(t *testing.T) {
	in := model.DeviceUpdate{Brand: "HP", Model: "EliteBook", OwnerName: "Maria Lopez"}
	if errs := ValidateDeviceUpdate(&in); len(errs) != 0 {
		t.Errorf("valid update rejected: %v", errs)
	}

	in.Brand = ""
	in.OwnerName = "  "
	if errs := ValidateDeviceUpdate(&in); len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}

func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		confirm     string
		expectError bool
	}{
		{name: "Valid", password: "longenough", confirm: "longenough", expectError: false},
		{name: "Exactly eight", password: "12345678", confirm: "12345678", expectError: false},
		{name: "Too short", password: "1234567", confirm: "1234567", expectError: true},
		{name: "Mismatch", password: "longenough", confirm: "different1", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewPassword(tt.password, tt.confirm)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCompanyInput(t *testing.T) {
	in := model.CompanyInput{Identification: "900123456", Name: "Acme"}
	if errs := ValidateCompanyInput(&in); len(errs) != 0 {
		t.Errorf("valid company rejected: %v", errs)
	}
	if errs := ValidateCompanyInput(&model.CompanyInput{}); len(errs) != 2 {
		t.Errorf("empty company: got %v", errs)
	}
}

func TestValidateTicketInput(t *testing.T) {
	in := model.TicketInput{Title: "Broken scanner", Area: "Reception", Description: "Does not power on"}
	if errs := ValidateTicketInput(&in); len(errs) != 0 {
		t.Errorf("valid ticket rejected: %v", errs)
	}
	if errs := ValidateTicketInput(&model.TicketInput{}); len(errs) != 3 {
		t.Errorf("empty ticket: got %v", errs)
	}
}
