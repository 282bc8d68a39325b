package backend

import (
	"context"
	"net/http"
	"net/url"

	"device-checkin-web/internal/model"
)

const pathCompanies = "/companies"

// ListCompanies fetches the external-company collection.
func (c *Client) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := c.getJSON(ctx, pathCompanies, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// CreateCompany creates an external company. Duplicate identifications are
// the backend's call; its error text is passed through untouched.
func (c *Client) CreateCompany(ctx context.Context, in model.CompanyInput) error {
	_, err := c.sendJSON(ctx, http.MethodPost, pathCompanies, in, nil)
	return err
}

// UpdateCompany updates an external company by id.
func (c *Client) UpdateCompany(ctx context.Context, id string, in model.CompanyInput) error {
	_, err := c.sendJSON(ctx, http.MethodPut, pathCompanies+"/"+url.PathEscape(id), in, nil)
	return err
}
