// Package dashboard holds the admin view state: the fetched ticket list, the
// active filters and the counters derived from them.
package dashboard

import (
	"net/url"
	"strings"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// FilterAll disables the status or category filter.
const FilterAll = "all"

// Filter narrows the ticket list. The three criteria compose with AND.
type Filter struct {
	// Search matches case-insensitively against name, email or reference.
	Search   string
	Status   string
	Category string
}

// Normalized replaces empty selections with FilterAll.
func (f Filter) Normalized() Filter {
	if f.Status == "" {
		f.Status = FilterAll
	}
	if f.Category == "" {
		f.Category = FilterAll
	}
	return f
}

// Active reports whether any criterion narrows the list.
func (f Filter) Active() bool {
	n := f.Normalized()
	return n.Search != "" || n.Status != FilterAll || n.Category != FilterAll
}

// Matches reports whether t passes every active criterion.
func (f Filter) Matches(t domain.Ticket) bool {
	n := f.Normalized()
	if n.Search != "" {
		term := strings.ToLower(n.Search)
		if !strings.Contains(strings.ToLower(t.Name), term) &&
			!strings.Contains(strings.ToLower(t.Email), term) &&
			!strings.Contains(strings.ToLower(t.Reference), term) {
			return false
		}
	}
	if n.Status != FilterAll && string(t.Status) != n.Status {
		return false
	}
	if n.Category != FilterAll && string(t.Category) != n.Category {
		return false
	}
	return true
}

// Apply returns the tickets that match f, in their original order. The input
// slice is not modified.
func Apply(tickets []domain.Ticket, f Filter) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Query encodes the active criteria as URL query parameters.
func (f Filter) Query() url.Values {
	q := url.Values{}
	n := f.Normalized()
	if n.Search != "" {
		q.Set("search", n.Search)
	}
	if n.Status != FilterAll {
		q.Set("status", n.Status)
	}
	if n.Category != FilterAll {
		q.Set("category", n.Category)
	}
	return q
}
