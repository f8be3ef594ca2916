package repository

import (
	"context"

	"storefront/internal/store"
)

// CategoryRepository defines category persistence operations.
// Renames and deletes cascade to the products of the category.
type CategoryRepository interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}

type categoryRepository struct {
	store *store.Store
}

// NewCategoryRepository builds a store-backed category repository.
func NewCategoryRepository(st *store.Store) CategoryRepository {
	return &categoryRepository{store: st}
}

func (r *categoryRepository) List(_ context.Context) ([]string, error) {
	return r.store.ListCategories(), nil
}

func (r *categoryRepository) Create(ctx context.Context, name string) error {
	return r.store.AddCategory(ctx, name)
}

func (r *categoryRepository) Rename(ctx context.Context, oldName, newName string) error {
	return r.store.RenameCategory(ctx, oldName, newName)
}

func (r *categoryRepository) Delete(ctx context.Context, name string) error {
	return r.store.DeleteCategory(ctx, name)
}
