package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/czegarraro/backend/internal/config"
	"github.com/czegarraro/backend/internal/events"
)

// NotificationService reacts to problem events emitted by mutations. Delivery
// is best-effort and never blocks or fails the originating request.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
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
	n.dispatcher.Subscribe(events.EventProblemStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventProblemCommentAdded, n.handleCommentAdded)
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ProblemStatusChanged", zap.String("problem_id", event.ProblemID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("ProblemCommentAdded", zap.String("problem_id", event.ProblemID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("problem_id", event.ProblemID),
		zap.String("event_type", string(event.Type)))
}
