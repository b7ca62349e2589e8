package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
)

// TicketStatuses lists every valid status in display order.
var TicketStatuses = []TicketStatus{TicketStatusPending, TicketStatusResolved}

// Valid reports whether s is a defined status.
func (s TicketStatus) Valid() bool {
	return s == TicketStatusPending || s == TicketStatusResolved
}

// Toggled returns the opposite status: pending <-> resolved.
func (s TicketStatus) Toggled() TicketStatus {
	if s == TicketStatusResolved {
		return TicketStatusPending
	}
	return TicketStatusResolved
}

// TicketCategory classifies the nature of the support request.
type TicketCategory string

const (
	TicketCategoryPayment      TicketCategory = "Payment"
	TicketCategoryCancellation TicketCategory = "Cancellation"
	TicketCategoryChangeDates  TicketCategory = "Change Dates"
	TicketCategoryOther        TicketCategory = "Other"
)

// TicketCategories lists every valid category in display order.
var TicketCategories = []TicketCategory{
	TicketCategoryPayment,
	TicketCategoryCancellation,
	TicketCategoryChangeDates,
	TicketCategoryOther,
}

// Valid reports whether c is a defined category.
func (c TicketCategory) Valid() bool {
	for _, candidate := range TicketCategories {
		if c == candidate {
			return true
		}
	}
	return false
}

// Ticket is a customer support request for a travel booking.
// Only Status and UpdatedAt change after creation.
type Ticket struct {
	ID          string
	Name        string
	Email       string
	Reference   string
	Category    TicketCategory
	Description string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
