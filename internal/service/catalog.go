package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/model"
)

// ProductStore is the catalog surface. ByIDs returns one entry per distinct
// resolved id; Update and Delete report whether a row was touched.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ByID(ctx context.Context, id string) (*model.Product, error)
	ByIDs(ctx context.Context, ids []string) (map[string]*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
}

// CatalogService is plain record CRUD; the only rule is "record exists".
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) Create(ctx context.Context, name, description string, price *float64, image string) (*model.Product, error) {
	p := &model.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		CreatedAt:   time.Now(),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrProductNotFound
	}
	return s.products.ByID(ctx, p.ID)
}

func (s *CatalogService) Delete(ctx context.Context, id string) (string, error) {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "product already absent", nil
	}
	return "product deleted", nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.products.ByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]*model.Product, error) {
	return s.products.List(ctx)
}
