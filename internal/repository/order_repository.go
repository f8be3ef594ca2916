package repository

import (
	"context"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/store"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// List returns orders in the order they were placed.
	List(ctx context.Context) ([]model.Order, error)
	ListNewestFirst(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type orderRepository struct {
	store *store.Store
}

// NewOrderRepository builds a store-backed order repository.
func NewOrderRepository(st *store.Store) OrderRepository {
	return &orderRepository{store: st}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.store.AddOrder(ctx, *order)
}

func (r *orderRepository) FindByID(_ context.Context, id string) (*model.Order, error) {
	order, ok := r.store.FindOrder(id)
	if !ok {
		return nil, errors.ErrOrderNotFound
	}
	return &order, nil
}

func (r *orderRepository) List(_ context.Context) ([]model.Order, error) {
	return r.store.ListOrders(), nil
}

func (r *orderRepository) ListNewestFirst(_ context.Context) ([]model.Order, error) {
	return r.store.ListOrdersNewestFirst(), nil
}

func (r *orderRepository) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	return r.store.ListOrdersByUser(userID), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return r.store.UpdateOrderStatus(ctx, id, status)
}
