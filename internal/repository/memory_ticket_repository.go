package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// MemoryTicketRepository keeps tickets in process memory. It backs the
// service when no database is configured and is used throughout the tests.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*domain.Ticket
	order   []string
	now     func() time.Time
}

// NewMemoryTicketRepository creates an empty in-memory repository.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return NewMemoryTicketRepositoryWithClock(time.Now)
}

// NewMemoryTicketRepositoryWithClock creates an in-memory repository with an injected clock.
func NewMemoryTicketRepositoryWithClock(now func() time.Time) *MemoryTicketRepository {
	return &MemoryTicketRepository{
		tickets: make(map[string]*domain.Ticket),
		now:     now,
	}
}

func (r *MemoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	stored := *ticket
	r.tickets[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *MemoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *ticket
	return &out, nil
}

func (r *MemoryTicketRepository) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Ticket, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		result = append(result, *r.tickets[r.order[i]])
	}
	// Reverse insertion order breaks ties between equal timestamps.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryTicketRepository) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := r.now()
	if now.Before(ticket.UpdatedAt) {
		now = ticket.UpdatedAt
	}
	ticket.Status = status
	ticket.UpdatedAt = now

	out := *ticket
	return &out, nil
}
