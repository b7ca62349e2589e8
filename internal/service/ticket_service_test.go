package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/travel-support-desk/internal/domain"
	"github.com/spec-kit/travel-support-desk/internal/events"
	"github.com/spec-kit/travel-support-desk/internal/repository"
	"github.com/spec-kit/travel-support-desk/internal/validation"
	apperrors "github.com/spec-kit/travel-support-desk/pkg/util/errorutil"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

// failingRepository fails every call with err.
type failingRepository struct{ err error }

func (f failingRepository) Create(context.Context, *domain.Ticket) error { return f.err }
func (f failingRepository) GetByID(context.Context, string) (*domain.Ticket, error) {
	return nil, f.err
}
func (f failingRepository) ListAll(context.Context) ([]domain.Ticket, error) { return nil, f.err }
func (f failingRepository) UpdateStatus(context.Context, string, domain.TicketStatus) (*domain.Ticket, error) {
	return nil, f.err
}

func tickingClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newTestService() (*TicketService, *recordingDispatcher) {
	d := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepositoryWithClock(tickingClock()),
		Dispatcher: d,
	})
	return svc, d
}

func validInput() validation.CreateTicketInput {
	return validation.CreateTicketInput{
		Name:        "Ann",
		Email:       "ann@example.com",
		Reference:   "BK-1001",
		Category:    "Change Dates",
		Description: "Please move my trip by one week.",
	}
}

func TestCreateTicket_RoundTrip(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	in := validInput()

	created, err := svc.CreateTicket(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.TicketStatusPending, created.Status)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := svc.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Reference, got.Reference)
	assert.Equal(t, domain.TicketCategory(in.Category), got.Category)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, domain.TicketStatusPending, got.Status)

	require.Len(t, d.events, 1)
	assert.Equal(t, events.EventTicketCreated, d.events[0].Type)
	assert.Equal(t, created.ID, d.events[0].TicketID)
	assert.NotEmpty(t, d.events[0].ID)
}

func TestCreateTicket_ValidationFailureStoresNothing(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	in := validInput()
	in.Category = "Refund"
	in.Description = "short"

	_, err := svc.CreateTicket(ctx, in)
	require.True(t, apperrors.IsValidation(err))
	fields := apperrors.ToDomainError(err).Fields
	assert.Len(t, fields, 2)

	list, err := svc.ListTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, d.events)
}

func TestCreateTicket_StoreFailureIsInternal(t *testing.T) {
	cause := errors.New("disk full")
	svc := NewTicketService(TicketDependencies{TicketRepo: failingRepository{err: cause}})

	_, err := svc.CreateTicket(context.Background(), validInput())
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeInternal, de.Code)
	assert.ErrorIs(t, err, cause)
}

func TestListTickets_NewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, name := range []string{"first", "second"} {
		in := validInput()
		in.Name = name
		_, err := svc.CreateTicket(ctx, in)
		require.NoError(t, err)
	}

	list, err := svc.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
}

func TestGetTicket_NotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetTicket(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	created, err := svc.CreateTicket(ctx, validInput())
	require.NoError(t, err)

	resolved, err := svc.UpdateStatus(ctx, created.ID, validation.UpdateStatusInput{Status: "resolved"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, resolved.Status)
	assert.True(t, resolved.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, resolved.CreatedAt.Equal(created.CreatedAt))

	// Resolving twice keeps the status and still refreshes updatedAt.
	again, err := svc.UpdateStatus(ctx, created.ID, validation.UpdateStatusInput{Status: "resolved"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, again.Status)
	assert.True(t, again.UpdatedAt.After(resolved.UpdatedAt))

	// Full reversal is allowed.
	reopened, err := svc.UpdateStatus(ctx, created.ID, validation.UpdateStatusInput{Status: "pending"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, reopened.Status)

	require.Len(t, d.events, 4)
	payload, ok := d.events[1].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusPending, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusResolved, payload.NewStatus)
	assert.Equal(t, "admin", payload.ChangedBy)
}

func TestUpdateStatus_InvalidStatusLeavesTicketUntouched(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateTicket(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, validation.UpdateStatusInput{Status: "closed"}, "")
	require.True(t, apperrors.IsValidation(err))

	got, err := svc.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, got.Status)
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	svc, d := newTestService()
	_, err := svc.UpdateStatus(context.Background(), "missing", validation.UpdateStatusInput{Status: "resolved"}, "")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, d.events)
}

func TestToggleStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateTicket(ctx, validInput())
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(ctx, created.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, toggled.Status)

	toggled, err = svc.ToggleStatus(ctx, created.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, toggled.Status)

	_, err = svc.ToggleStatus(ctx, "missing", "admin")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestActivityService_LogsLifecycle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, zap.New(core)).RegisterHandlers()

	svc := NewTicketService(TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepository(),
		Dispatcher: dispatcher,
	})
	ctx := context.Background()
	created, err := svc.CreateTicket(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.ToggleStatus(ctx, created.ID, "admin")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("ticket created").Len())
	changed := logs.FilterMessage("ticket status changed").All()
	require.Len(t, changed, 1)
	assert.Equal(t, "resolved", changed[0].ContextMap()["new_status"])
	assert.Equal(t, created.ID, changed[0].ContextMap()["ticket_id"])
}
