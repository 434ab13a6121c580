package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, p *model.Product) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, image, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, priceArg(p.Price), p.Image, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *ProductStore) Update(ctx context.Context, p *model.Product) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3, image = $4 WHERE id = $5`,
		p.Name, p.Description, priceArg(p.Price), p.Image, p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	return n > 0, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}

func (s *ProductStore) ByID(ctx context.Context, id string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, image, created_at FROM products WHERE id = $1`, id)

	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ByIDs resolves a batch of ids in one query. The result holds at most one
// entry per distinct id; missing ids are simply absent from the map.
func (s *ProductStore) ByIDs(ctx context.Context, ids []string) (map[string]*model.Product, error) {
	if len(ids) == 0 {
		return map[string]*model.Product{}, nil
	}

	seen := make(map[string]struct{}, len(ids))
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, id)
	}

	query := `SELECT id, name, description, price, image, created_at FROM products WHERE id IN (` +
		strings.Join(placeholders, ", ") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*model.Product, len(args))
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result[p.ID] = p
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return result, nil
}

func (s *ProductStore) List(ctx context.Context) ([]*model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price, image, created_at FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return products, nil
}

func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	var p model.Product
	var description, image sql.NullString
	var price sql.NullFloat64
	if err := scan(&p.ID, &p.Name, &description, &price, &image, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Image = image.String
	if price.Valid {
		p.Price = &price.Float64
	}
	return &p, nil
}

func priceArg(price *float64) any {
	if price == nil {
		return nil
	}
	return *price
}
