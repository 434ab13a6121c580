package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrPriceMissing    = errors.New("product has no price")
)

// OrderStore is the order collection surface. Lookups return (nil, nil) on
// absence; Delete and UpdateStatus report whether a row was touched.
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
	ByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type OrderService struct {
	orders   OrderStore
	users    UserStore
	products ProductStore
}

func NewOrderService(orders OrderStore, users UserStore, products ProductStore) *OrderService {
	return &OrderService{orders: orders, users: users, products: products}
}

// Create validates the user and product references, freezes the total as the
// sum of the referenced prices at this moment, and persists the order. The
// product list keeps its order and duplicates: an id listed twice counts
// twice toward the total. Nothing is persisted when validation fails.
func (s *OrderService) Create(ctx context.Context, userID string, productIDs []string, status string) (*model.HydratedOrder, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resolved, err := s.products.ByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	var total float64
	products := make([]*model.Product, 0, len(productIDs))
	for _, id := range productIDs {
		p, ok := resolved[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		if p.Price == nil {
			return nil, fmt.Errorf("%w: %s", ErrPriceMissing, p.ID)
		}
		total += *p.Price
		products = append(products, p)
	}

	if status == "" {
		status = model.StatusPlaced
	}

	order := &model.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProductIDs: productIDs,
		Status:     status,
		TotalPrice: total,
		CreatedAt:  time.Now(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// Records were resolved for validation a moment ago; reuse them for the
	// response instead of re-reading the stores.
	return &model.HydratedOrder{
		ID:         order.ID,
		User:       user,
		Products:   products,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}, nil
}

// UpdateStatus overwrites the status field only. Any status value is
// accepted; there is no enforced transition graph.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*model.HydratedOrder, error) {
	order, err := s.orders.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if _, err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	return s.hydrate(ctx, order)
}

// Delete removes the order if present. Deleting an absent order is not an
// error; the message tells the two outcomes apart.
func (s *OrderService) Delete(ctx context.Context, id string) (string, error) {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "order already absent", nil
	}
	return "order deleted", nil
}

// Get returns the hydrated order, or (nil, nil) when no order matches.
func (s *OrderService) Get(ctx context.Context, id string) (*model.HydratedOrder, error) {
	order, err := s.orders.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return s.hydrate(ctx, order)
}

func (s *OrderService) List(ctx context.Context) ([]*model.HydratedOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrateAll(ctx, orders)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*model.HydratedOrder, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.hydrateAll(ctx, orders)
}

// hydrate substitutes the stored references with full records. A reference
// whose record has since been deleted resolves to nil rather than failing
// the read. The frozen total is returned as stored, never recomputed.
func (s *OrderService) hydrate(ctx context.Context, order *model.Order) (*model.HydratedOrder, error) {
	user, err := s.users.ByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("hydrate user: %w", err)
	}

	resolved, err := s.products.ByIDs(ctx, order.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("hydrate products: %w", err)
	}

	products := make([]*model.Product, len(order.ProductIDs))
	for i, id := range order.ProductIDs {
		products[i] = resolved[id]
	}

	return &model.HydratedOrder{
		ID:         order.ID,
		User:       user,
		Products:   products,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}, nil
}

func (s *OrderService) hydrateAll(ctx context.Context, orders []*model.Order) ([]*model.HydratedOrder, error) {
	hydrated := make([]*model.HydratedOrder, 0, len(orders))
	for _, order := range orders {
		h, err := s.hydrate(ctx, order)
		if err != nil {
			return nil, err
		}
		hydrated = append(hydrated, h)
	}
	return hydrated, nil
}
