package dashboard

import (
	"time"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// Summary holds the dashboard counters.
type Summary struct {
	Total    int
	Pending  int
	Resolved int
	Today    int
}

// Summarize counts tickets by status and those created on now's calendar day,
// evaluated in now's location.
func Summarize(tickets []domain.Ticket, now time.Time) Summary {
	s := Summary{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusPending:
			s.Pending++
		case domain.TicketStatusResolved:
			s.Resolved++
		}
		if sameDay(t.CreatedAt.In(now.Location()), now) {
			s.Today++
		}
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
