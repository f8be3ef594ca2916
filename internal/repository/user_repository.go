package repository

import (
	"context"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/store"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) error
}

type userRepository struct {
	store *store.Store
}

// NewUserRepository builds a store-backed user repository.
func NewUserRepository(st *store.Store) UserRepository {
	return &userRepository{store: st}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.store.AddUser(ctx, *user)
}

func (r *userRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	user, ok := r.store.FindUser(id)
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) List(_ context.Context) ([]model.User, error) {
	return r.store.ListUsers(), nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch model.UserPatch) error {
	return r.store.UpdateUser(ctx, id, patch)
}
