package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/delfood/owner-service/internal/config"
	"github.com/delfood/owner-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventOwnerRegistered, n.handleOwnerRegistered)
	n.dispatcher.Subscribe(events.EventOwnerContactUpdated, n.handleOwnerContactUpdated)
	n.dispatcher.Subscribe(events.EventOwnerPasswordChanged, n.handleOwnerPasswordChanged)
}

func (n *NotificationService) handleOwnerRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("OwnerRegistered", zap.String("owner_id", event.OwnerID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOwnerContactUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("OwnerContactUpdated", zap.String("owner_id", event.OwnerID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOwnerPasswordChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OwnerPasswordChanged", zap.String("owner_id", event.OwnerID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("owner_id", event.OwnerID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("owner_id", event.OwnerID),
		zap.String("event_type", string(event.Type)))
}
