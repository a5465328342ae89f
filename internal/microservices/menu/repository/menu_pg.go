package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chickkart-system/internal/domain"
)

// NotifyChannel is the Postgres channel the catalog admin tooling NOTIFYs on
// whenever menu rows change.
const NotifyChannel = "chickkart_menu"

type MenuRepositoryInterface interface {
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	ListItems(ctx context.Context, categorySlug, search string) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id string) (domain.MenuItem, error)
}

type MenuRepository struct {
	pool *pgxpool.Pool
}

func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository { return &MenuRepository{pool: pool} }

func (r *MenuRepository) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, COALESCE(icon,''), slug, display_order
FROM menu_categories
WHERE is_active = true
ORDER BY display_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuCategory
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Slug, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MenuRepository) ListItems(ctx context.Context, categorySlug, search string) ([]domain.MenuItem, error) {
	query := `
SELECT i.id, i.name, COALESCE(i.description,''), i.price, COALESCE(i.image,''), c.slug, i.is_available
FROM menu_items i
JOIN menu_categories c ON c.id = i.category_id
WHERE i.is_available = true`
	args := []any{}
	if categorySlug != "" && categorySlug != "all" {
		args = append(args, categorySlug)
		query += fmt.Sprintf(" AND c.slug = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (i.name ILIKE $%d OR i.description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY i.display_order ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Image, &it.CategorySlug, &it.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *MenuRepository) GetItem(ctx context.Context, id string) (domain.MenuItem, error) {
	var it domain.MenuItem
	err := r.pool.QueryRow(ctx, `
SELECT i.id, i.name, COALESCE(i.description,''), i.price, COALESCE(i.image,''), c.slug, i.is_available
FROM menu_items i
JOIN menu_categories c ON c.id = i.category_id
WHERE i.id = $1`, id).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Image, &it.CategorySlug, &it.IsAvailable)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Listen blocks on the menu notify channel, invoking onChange for every
// notification until ctx is cancelled. Runs on its own pooled connection.
func (r *MenuRepository) Listen(ctx context.Context, onChange func(payload string)) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		onChange(n.Payload)
	}
}
