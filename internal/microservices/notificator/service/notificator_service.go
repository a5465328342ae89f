package service

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/domain"
)

// NotificatorService tails the status-change fanout and logs customer-facing
// updates. This is the hook point for SMS/push delivery; today it only logs.
type NotificatorService struct {
	rmq *rabbitmq.Client
	lg  *logger.Logger
}

func NewNotificatorService(rmq *rabbitmq.Client, lg *logger.Logger) *NotificatorService {
	return &NotificatorService{rmq: rmq, lg: lg}
}

func (ns *NotificatorService) Notify(ctx context.Context) error {
	if err := ns.rmq.DeclareTopology(); err != nil {
		return err
	}
	msgs, err := ns.rmq.Consume(rabbitmq.NotificationsQueue, "notification-subscriber", 1)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			ns.handle(d)
		}
	}
}

func (ns *NotificatorService) handle(d amqp.Delivery) {
	var msg domain.StatusChangeMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		ns.lg.Warn("status_message_dropped", map[string]any{"message_id": d.MessageId})
		_ = d.Nack(false, false)
		return
	}
	ns.lg.Info("order_status_update", map[string]any{
		"order_id":   msg.OrderID,
		"old_status": msg.OldStatus,
		"new_status": msg.NewStatus,
		"changed_by": msg.ChangedBy,
	})
	_ = d.Ack(false)
}
