package backend

import (
	"context"
	"net/http"
	"net/url"

	"device-checkin-web/internal/model"
)

const pathTickets = "/tickets"

// ListTickets fetches the ticket collection.
func (c *Client) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	if err := c.getJSON(ctx, pathTickets, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// CreateTicket creates a support ticket.
func (c *Client) CreateTicket(ctx context.Context, in model.TicketInput) error {
	_, err := c.sendJSON(ctx, http.MethodPost, pathTickets, in, nil)
	return err
}

// UpdateTicketStatus PATCHes a ticket's status. Any transition is allowed;
// monotonic progression is backend convention, not a client rule.
func (c *Client) UpdateTicketStatus(ctx context.Context, id string, status model.TicketStatus) error {
	payload := map[string]model.TicketStatus{"status": status}
	_, err := c.sendJSON(ctx, http.MethodPatch, pathTickets+"/"+url.PathEscape(id), payload, nil)
	return err
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	return c.delete(ctx, pathTickets+"/"+url.PathEscape(id))
}
