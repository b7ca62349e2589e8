package dashboard

import (
	"time"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// View is the state owned by one admin dashboard render: the full ticket list
// as last fetched and the filter in effect. Derived data is recomputed on
// every call.
type View struct {
	tickets []domain.Ticket
	filter  Filter
}

// NewView creates a view over a fetched ticket list.
func NewView(tickets []domain.Ticket, filter Filter) *View {
	return &View{tickets: tickets, filter: filter.Normalized()}
}

// Filter returns the filter in effect.
func (v *View) Filter() Filter {
	return v.filter
}

// Visible returns the tickets passing the filter.
func (v *View) Visible() []domain.Ticket {
	return Apply(v.tickets, v.filter)
}

// Summary derives the counters from the unfiltered list.
func (v *View) Summary(now time.Time) Summary {
	return Summarize(v.tickets, now)
}
