package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/model"
	"device-checkin-web/pkg/search"
	"device-checkin-web/pkg/validation"
)

// companiesPage is the external-companies view model.
type companiesPage struct {
	Companies []model.Company
	Query     string
	Editing   *model.Company
}

// ListCompanies renders the external-companies table plus the create form.
// An edit query parameter switches the form to update mode for that record.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.backend.ListCompanies(h.requestContext(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		filtered := companies[:0]
		for _, c := range companies {
			if search.Matches(query, c.Name, c.Identification) {
				filtered = append(filtered, c)
			}
		}
		companies = filtered
	}

	data := companiesPage{Companies: companies, Query: query}
	if editID := r.URL.Query().Get("edit"); editID != "" {
		for i := range companies {
			if companies[i].CompanyID() == editID {
				data.Editing = &companies[i]
				break
			}
		}
	}

	p := h.newPage(r, "External companies", "companies")
	p.Data = data
	h.render(w, "companies", http.StatusOK, p)
}

// CreateCompany validates and submits the create form. Backend rejections,
// duplicate identification included, surface verbatim on the list page.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/companies", "Invalid form submission")
		return
	}

	in := model.CompanyInput{
		Identification: strings.TrimSpace(r.PostFormValue("identification")),
		Name:           strings.TrimSpace(r.PostFormValue("name")),
	}
	if problems := validation.ValidateCompanyInput(&in); len(problems) > 0 {
		h.redirectError(w, r, "/companies", strings.Join(problems, "; "))
		return
	}

	if err := h.backend.CreateCompany(h.requestContext(r), in); err != nil {
		h.redirectError(w, r, "/companies", errorMessage(err))
		return
	}
	h.redirectMessage(w, r, "/companies", "Company registered")
}

// UpdateCompany validates and submits the update form.
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/companies", "Invalid form submission")
		return
	}

	id := mux.Vars(r)["id"]
	in := model.CompanyInput{
		Identification: strings.TrimSpace(r.PostFormValue("identification")),
		Name:           strings.TrimSpace(r.PostFormValue("name")),
	}
	if problems := validation.ValidateCompanyInput(&in); len(problems) > 0 {
		h.redirectError(w, r, "/companies?edit="+id, strings.Join(problems, "; "))
		return
	}

	if err := h.backend.UpdateCompany(h.requestContext(r), id, in); err != nil {
		h.redirectError(w, r, "/companies?edit="+id, errorMessage(err))
		return
	}
	h.redirectMessage(w, r, "/companies", "Company updated")
}
