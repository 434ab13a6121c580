package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/model"
)

// OrderStore owns the orders collection. The product id list is persisted as
// a jsonb array so order and duplicates survive the round trip.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(ctx context.Context, order *model.Order) error {
	ids, err := json.Marshal(order.ProductIDs)
	if err != nil {
		return fmt.Errorf("marshal product ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, product_ids, status, total_price, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, order.UserID, ids, order.Status, order.TotalPrice, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *OrderStore) ByID(ctx context.Context, id string) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, product_ids, status, total_price, created_at FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *OrderStore) List(ctx context.Context) ([]*model.Order, error) {
	return s.list(ctx,
		`SELECT id, user_id, product_ids, status, total_price, created_at FROM orders ORDER BY created_at DESC`)
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.list(ctx,
		`SELECT id, user_id, product_ids, status, total_price, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (s *OrderStore) list(ctx context.Context, query string, args ...any) ([]*model.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the status field only; the total and the references
// stay frozen.
func (s *OrderStore) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return n > 0, nil
}

func (s *OrderStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return n > 0, nil
}

func scanOrder(scan func(dest ...any) error) (*model.Order, error) {
	var order model.Order
	var rawIDs []byte
	if err := scan(&order.ID, &order.UserID, &rawIDs, &order.Status, &order.TotalPrice, &order.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawIDs, &order.ProductIDs); err != nil {
		return nil, fmt.Errorf("unmarshal product ids: %w", err)
	}
	return &order, nil
}
