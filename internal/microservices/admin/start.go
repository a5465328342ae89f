package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"

	"chickkart-system/internal/common/httpx"
	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/config"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/connections/redisdb"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/admin/handlers"
	"chickkart-system/internal/microservices/admin/repository"
	"chickkart-system/internal/microservices/admin/service"
)

var (
	errRequeue = errors.New("requeue")     // nack(requeue=true)
	errDrop    = errors.New("dead_letter") // nack(requeue=false)
)

// Run wires the admin service: the order lifecycle store with Postgres
// write-through, the live notification feed, token auth, the AMQP consumer
// ingesting checkout orders and the staff HTTP API. Blocks until ctx ends.
func Run(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, rmq *rabbitmq.Client, rdb *redisdb.Client) error {
	lg := logger.New("admin-service")

	if err := rmq.DeclareTopology(); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}

	repo := repository.NewOrderRepository(pool)
	feed := service.NewFeed(service.DefaultNotificationTTL)
	orders := service.NewOrderService(repo, feed, rmq, lg)
	auth := service.NewAuthService(rdb, cfg.Admin.Username, cfg.Admin.Password,
		time.Duration(cfg.Admin.TokenTTLHours)*time.Hour, lg)

	h := handlers.NewAdminHandler(orders, feed, auth)

	msgs, err := rmq.Consume(rabbitmq.AdminOrdersQueue, "admin-service", 1)
	if err != nil {
		return fmt.Errorf("consume %s: %w", rabbitmq.AdminOrdersQueue, err)
	}
	go consumeOrders(ctx, msgs, orders, lg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/v1/admin/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireAuth(auth))
		r.Post("/api/v1/admin/logout", h.Logout)
		r.Get("/api/v1/admin/orders", h.ListOrders)
		r.Get("/api/v1/admin/metrics", h.GetMetrics)
		r.Patch("/api/v1/admin/orders/{order_id}/status", h.UpdateStatus)
		r.Post("/api/v1/admin/orders/bulk-status", h.BulkUpdateStatus)
		r.Get("/api/v1/admin/notifications", h.ListNotifications)
		r.Delete("/api/v1/admin/notifications/{notification_id}", h.DismissNotification)
		r.Post("/api/v1/admin/notifications/{notification_id}/view", h.ViewNotification)
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.AdminPort)
	lg.Info("http_listening", map[string]any{"addr": addr})
	return httpx.New(addr, r).Run(ctx)
}

// consumeOrders drains the admin orders queue until the channel closes.
// Unparseable messages are dropped; ingest failures requeue for retry.
func consumeOrders(ctx context.Context, msgs <-chan amqp.Delivery, orders *service.OrderService, lg *logger.Logger) {
	for d := range msgs {
		err := ingestOne(ctx, d, orders)
		switch {
		case err == nil:
			_ = d.Ack(false)
		case errors.Is(err, errDrop):
			lg.Warn("order_message_dropped", map[string]any{"message_id": d.MessageId})
			_ = d.Nack(false, false)
		default:
			lg.Error("order_ingest_failed", err, map[string]any{"message_id": d.MessageId})
			_ = d.Nack(false, true)
		}
	}
}

func ingestOne(ctx context.Context, d amqp.Delivery, orders *service.OrderService) error {
	var msg domain.OrderMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return errDrop
	}
	if msg.OrderID == "" {
		return errDrop
	}
	if err := orders.Ingest(ctx, msg.Order()); err != nil {
		return fmt.Errorf("%w: %v", errRequeue, err)
	}
	return nil
}
