package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-support-desk/internal/domain"
	"github.com/spec-kit/travel-support-desk/internal/events"
	"github.com/spec-kit/travel-support-desk/internal/repository"
	"github.com/spec-kit/travel-support-desk/internal/validation"
	apperrors "github.com/spec-kit/travel-support-desk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Validator  *validation.Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	v := deps.Validator
	if v == nil {
		v = validation.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		validator:  v,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket validates and stores a new ticket. The status is always pending.
func (s *TicketService) CreateTicket(ctx context.Context, input validation.CreateTicketInput) (*domain.Ticket, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Name:        input.Name,
		Email:       input.Email,
		Reference:   input.Reference,
		Category:    domain.TicketCategory(input.Category),
		Description: input.Description,
		Status:      domain.TicketStatusPending,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Category:  ticket.Category,
			Reference: ticket.Reference,
		},
	})
	return ticket, nil
}

// ListTickets returns every ticket, newest first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return ticket, nil
}

// UpdateStatus validates the payload and writes the new status. Setting the
// current status again is accepted and still refreshes UpdatedAt.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, input validation.UpdateStatusInput, changedBy string) (*domain.Ticket, error) {
	if err := s.validator.ValidateStatus(input); err != nil {
		return nil, err
	}
	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return s.writeStatus(ctx, current, domain.TicketStatus(input.Status), changedBy)
}

// ToggleStatus flips a ticket between pending and resolved.
func (s *TicketService) ToggleStatus(ctx context.Context, id, changedBy string) (*domain.Ticket, error) {
	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return s.writeStatus(ctx, current, current.Status.Toggled(), changedBy)
}

func (s *TicketService) writeStatus(ctx context.Context, current *domain.Ticket, next domain.TicketStatus, changedBy string) (*domain.Ticket, error) {
	ticket, err := s.tickets.UpdateStatus(ctx, current.ID, next)
	if err != nil {
		return nil, mapRepoError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: ticket.Status,
			ChangedBy: changedBy,
		},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Ticket")
	}
	return apperrors.NewInternalError(err)
}
