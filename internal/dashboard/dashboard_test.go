package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{ID: "1", Name: "Ann", Email: "a@x.com", Reference: "REF1", Status: domain.TicketStatusPending, Category: domain.TicketCategoryPayment},
		{ID: "2", Name: "Bo", Email: "b@x.com", Reference: "REF2", Status: domain.TicketStatusResolved, Category: domain.TicketCategoryOther},
	}
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"1", "2"}},
		{name: "explicit all", filter: Filter{Status: FilterAll, Category: FilterAll}, want: []string{"1", "2"}},
		{name: "search reference case-insensitive", filter: Filter{Search: "ref2"}, want: []string{"2"}},
		{name: "search name", filter: Filter{Search: "ANN"}, want: []string{"1"}},
		{name: "search email", filter: Filter{Search: "b@x"}, want: []string{"2"}},
		{name: "search shared substring", filter: Filter{Search: "x.com"}, want: []string{"1", "2"}},
		{name: "search no match", filter: Filter{Search: "zzz"}, want: []string{}},
		{name: "status resolved", filter: Filter{Status: "resolved"}, want: []string{"2"}},
		{name: "category payment", filter: Filter{Category: "Payment"}, want: []string{"1"}},
		{name: "search and status", filter: Filter{Search: "b", Status: "resolved"}, want: []string{"2"}},
		{name: "conflicting criteria", filter: Filter{Search: "ann", Status: "resolved"}, want: []string{}},
		{name: "all three", filter: Filter{Search: "ref", Status: "pending", Category: "Payment"}, want: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sampleTickets(), tt.filter)))
		})
	}
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	src := sampleTickets()
	_ = Apply(src, Filter{Status: "resolved"})
	assert.Equal(t, []string{"1", "2"}, ids(src))
	assert.Equal(t, "Ann", src[0].Name)
}

func TestFilter_ActiveAndQuery(t *testing.T) {
	assert.False(t, Filter{}.Active())
	assert.False(t, Filter{Status: FilterAll, Category: FilterAll}.Active())
	assert.True(t, Filter{Search: "x"}.Active())
	assert.True(t, Filter{Category: "Other"}.Active())

	q := Filter{Search: "ref 2", Status: "pending"}.Query()
	assert.Equal(t, "ref 2", q.Get("search"))
	assert.Equal(t, "pending", q.Get("status"))
	assert.False(t, q.Has("category"))
	assert.Empty(t, Filter{}.Query().Encode())
}

func TestSummarize(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2026, 10, 16, 1, 0, 0, 0, loc)

	tickets := sampleTickets()
	// 2026-10-15 20:00 UTC is 2026-10-16 03:00 in UTC+7: today locally.
	tickets[0].CreatedAt = time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	// 2026-10-15 12:00 UTC is 2026-10-15 19:00 in UTC+7: yesterday locally.
	tickets[1].CreatedAt = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	s := Summarize(tickets, now)
	assert.Equal(t, Summary{Total: 2, Pending: 1, Resolved: 1, Today: 1}, s)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, time.Now()))
}

func TestView(t *testing.T) {
	now := time.Now()
	tickets := sampleTickets()
	for i := range tickets {
		tickets[i].CreatedAt = now
	}

	v := NewView(tickets, Filter{Status: "resolved"})
	assert.Equal(t, FilterAll, v.Filter().Category)
	assert.Equal(t, []string{"2"}, ids(v.Visible()))
	// Counters ignore the filter.
	assert.Equal(t, Summary{Total: 2, Pending: 1, Resolved: 1, Today: 2}, v.Summary(now))

	unfiltered := NewView(tickets, Filter{})
	assert.False(t, unfiltered.Filter().Active())
	assert.Len(t, unfiltered.Visible(), 2)
}
