package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/pagehub/internal/config"
	"github.com/spec-kit/pagehub/internal/events"
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
	n.dispatcher.Subscribe(events.EventSiteCreated, n.handleSiteCreated)
	n.dispatcher.Subscribe(events.EventSiteDeleted, n.handleSiteDeleted)
	n.dispatcher.Subscribe(events.EventAccessTokenIssued, n.handleAccessTokenIssued)
}

func (n *NotificationService) handleSiteCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("SiteCreated", zap.String("site_id", event.SiteID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSiteDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("SiteDeleted", zap.String("site_id", event.SiteID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAccessTokenIssued(ctx context.Context, event events.Event) error {
	n.logger.Info("AccessTokenIssued", zap.String("site_id", event.SiteID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("site_id", event.SiteID),
		zap.String("event_type", string(event.Type)))
}
