package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zetroo/catalog-service/internal/events"
)

// ActivityService records catalog activity in the structured log.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventProductCreated, a.handleProductCreated)
}

func (a *ActivityService) handleUserRegistered(_ context.Context, event events.Event) error {
	a.logger.Info("UserRegistered",
		zap.String("event_id", event.ID),
		zap.String("user_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleProductCreated(_ context.Context, event events.Event) error {
	a.logger.Info("ProductCreated",
		zap.String("event_id", event.ID),
		zap.String("product_id", event.SubjectID),
		zap.String("actor", event.Actor),
		zap.Any("payload", event.Payload))
	return nil
}

// publish delivers event and logs handler failures; activity is best effort
// and never fails the originating request.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
