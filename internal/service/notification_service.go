package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/events"
)

// NotificationService logs domain events and stubs outbound delivery.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPlaceCreated, n.handlePlaceCreated)
	n.dispatcher.Subscribe(events.EventPlaceDeleted, n.handlePlaceDeleted)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePlaceCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("PlaceCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePlaceDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("PlaceDeleted", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}
