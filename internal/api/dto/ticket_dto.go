package dto

import (
	"time"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Reference   string                `json:"reference"`
	Category    domain.TicketCategory `json:"category"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// TicketSubmissionForm is the form-encoded submission payload.
type TicketSubmissionForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	Reference   string `form:"reference"`
	Category    string `form:"category"`
	Description string `form:"description"`
}

// NewTicketResponse converts a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Name:        ticket.Name,
		Email:       ticket.Email,
		Reference:   ticket.Reference,
		Category:    ticket.Category,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketResponses converts a list, always yielding a non-nil slice.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
