package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"chickkart-system/internal/domain"
)

type OrderRepositoryInterface interface {
	InsertOrder(ctx context.Context, order domain.Order) error
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, changedBy string) error
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// InsertOrder writes the order, its line items and the initial status-log
// row in one transaction.
func (r *OrderRepository) InsertOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
INSERT INTO orders
    (id, customer_name, customer_phone, spice_level, payment_method, payment_status, status, total_amount, notes, created_at, updated_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
ON CONFLICT (id) DO NOTHING`,
		order.ID,
		order.Customer.Name,
		order.Customer.Phone,
		order.Customer.SpiceLevel,
		order.PaymentMethod,
		string(order.PaymentStatus),
		string(order.Status),
		order.Total,
		order.Notes,
		order.Timestamp,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, item_id, name, quantity, price, customizations)
VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.ID, item.Name, item.Quantity, item.Price, item.Customizations,
		); err != nil {
			return fmt.Errorf("insert order item %s: %w", item.Name, err)
		}
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
VALUES ($1, $2, 'storefront-service', NOW())`,
		order.ID, string(order.Status),
	); err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UpdateStatus records the new status and appends to the status log.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, changedBy string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`, orderID, string(status)); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
VALUES ($1, $2, $3, NOW())`, orderID, string(status), changedBy); err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
