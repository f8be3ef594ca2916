package repository

import (
	"context"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/store"
)

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id string, patch model.ProductPatch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	// ListActive returns visible products; "" or "All" selects every category.
	ListActive(ctx context.Context, category string) ([]model.Product, error)
}

type productRepository struct {
	store *store.Store
}

// NewProductRepository builds a store-backed product repository.
func NewProductRepository(st *store.Store) ProductRepository {
	return &productRepository{store: st}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.store.AddProduct(ctx, *product)
}

func (r *productRepository) Update(ctx context.Context, id string, patch model.ProductPatch) error {
	return r.store.UpdateProduct(ctx, id, patch)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteProduct(ctx, id)
}

func (r *productRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	product, ok := r.store.FindProduct(id)
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &product, nil
}

func (r *productRepository) List(_ context.Context) ([]model.Product, error) {
	return r.store.ListProducts(), nil
}

func (r *productRepository) ListActive(_ context.Context, category string) ([]model.Product, error) {
	return r.store.ListActiveProducts(category), nil
}
