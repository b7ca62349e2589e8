package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/travel-support-desk/internal/events"
)

// ActivityService writes ticket lifecycle events to the structured log.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handleTicketCreated)
	a.dispatcher.Subscribe(events.EventTicketStatusChanged, a.handleTicketStatusChanged)
}

func (a *ActivityService) handleTicketCreated(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("ticket_id", event.TicketID)}
	if p, ok := event.Payload.(events.TicketCreatedPayload); ok {
		fields = append(fields, zap.String("category", string(p.Category)), zap.String("reference", p.Reference))
	}
	a.logger.Info("ticket created", fields...)
	return nil
}

func (a *ActivityService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("ticket_id", event.TicketID)}
	if p, ok := event.Payload.(events.TicketStatusChangedPayload); ok {
		fields = append(fields,
			zap.String("old_status", string(p.OldStatus)),
			zap.String("new_status", string(p.NewStatus)),
			zap.String("changed_by", p.ChangedBy))
	}
	a.logger.Info("ticket status changed", fields...)
	return nil
}
