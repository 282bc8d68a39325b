package handler

import (
	"io"
	"net/http"
	"strings"

	"device-checkin-web/internal/audit"
	"device-checkin-web/internal/model"
	"device-checkin-web/pkg/validation"
)

// maxPhotoBytes bounds the uploaded photo size.
const maxPhotoBytes = 10 << 20

// ShowCheckin renders the device-type chooser.
func (h *Handler) ShowCheckin(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Check in a device", "checkin")
	h.render(w, "checkin", http.StatusOK, p)
}

// ShowComputerCheckin renders the computer check-in form.
func (h *Handler) ShowComputerCheckin(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Check in a computer", "checkin")
	p.Data = model.ComputerCheckin{}
	h.render(w, "checkin_computer", http.StatusOK, p)
}

// CheckinComputer validates and submits the computer check-in form, then
// records the CREATE audit event.
func (h *Handler) CheckinComputer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		h.redirectError(w, r, "/checkin/computer", "Invalid form submission")
		return
	}

	in := model.ComputerCheckin{
		Brand:        strings.TrimSpace(r.PostFormValue("brand")),
		Model:        strings.TrimSpace(r.PostFormValue("model")),
		Color:        strings.TrimSpace(r.PostFormValue("color")),
		OwnerName:    strings.TrimSpace(r.PostFormValue("ownerName")),
		OwnerID:      strings.TrimSpace(r.PostFormValue("ownerId")),
		Descriptions: strings.TrimSpace(r.PostFormValue("descriptions")),
		Frequent:     r.PostFormValue("frequent") == "on" || r.PostFormValue("frequent") == "true",
		Photo:        h.formPhoto(r),
	}

	if problems := validation.ValidateComputerCheckin(&in); len(problems) > 0 {
		p := h.newPage(r, "Check in a computer", "checkin")
		p.Error = strings.Join(problems, "; ")
		p.Data = in
		h.render(w, "checkin_computer", http.StatusOK, p)
		return
	}

	created, err := h.backend.CheckInComputer(h.requestContext(r), in)
	if err != nil {
		p := h.newPage(r, "Check in a computer", "checkin")
		p.Error = errorMessage(err)
		p.Data = in
		h.render(w, "checkin_computer", http.StatusOK, p)
		return
	}

	h.audit.Record(audit.ActionCreate, created)

	if created.IsFrequent {
		h.redirectMessage(w, r, "/frequent", "Computer registered as frequent")
		return
	}
	h.redirectMessage(w, r, "/devices", "Computer checked in")
}

// ShowMedicalCheckin renders the biomedical device check-in form.
func (h *Handler) ShowMedicalCheckin(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Check in a biomedical device", "checkin")
	p.Data = model.MedicalCheckin{}
	h.render(w, "checkin_medical", http.StatusOK, p)
}

// CheckinMedical validates and submits the biomedical check-in form, then
// records the CREATE audit event.
func (h *Handler) CheckinMedical(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		h.redirectError(w, r, "/checkin/medical", "Invalid form submission")
		return
	}

	in := model.MedicalCheckin{
		Brand:        strings.TrimSpace(r.PostFormValue("brand")),
		Model:        strings.TrimSpace(r.PostFormValue("model")),
		Serial:       strings.TrimSpace(r.PostFormValue("serial")),
		OwnerName:    strings.TrimSpace(r.PostFormValue("ownerName")),
		OwnerID:      strings.TrimSpace(r.PostFormValue("ownerId")),
		Provider:     strings.TrimSpace(r.PostFormValue("provider")),
		Descriptions: strings.TrimSpace(r.PostFormValue("descriptions")),
		Category:     strings.TrimSpace(r.PostFormValue("category")),
		Photo:        h.formPhoto(r),
	}

	if problems := validation.ValidateMedicalCheckin(&in); len(problems) > 0 {
		p := h.newPage(r, "Check in a biomedical device", "checkin")
		p.Error = strings.Join(problems, "; ")
		p.Data = in
		h.render(w, "checkin_medical", http.StatusOK, p)
		return
	}

	created, err := h.backend.CheckInMedicalDevice(h.requestContext(r), in)
	if err != nil {
		p := h.newPage(r, "Check in a biomedical device", "checkin")
		p.Error = errorMessage(err)
		p.Data = in
		h.render(w, "checkin_medical", http.StatusOK, p)
		return
	}

	h.audit.Record(audit.ActionCreate, created)
	h.redirectMessage(w, r, "/devices", "Biomedical device checked in")
}

// formPhoto reads the uploaded photo field. A missing photo returns nil;
// validation decides whether that is acceptable.
func (h *Handler) formPhoto(r *http.Request) *model.PhotoUpload {
	file, header, err := r.FormFile("photo")
	if err != nil {
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil || len(data) == 0 {
		return nil
	}
	return &model.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
}
