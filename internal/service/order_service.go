package service

import (
	"context"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderService exposes order history and fulfilment.
type OrderService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// ListForUser returns a user's orders, newest first.
func (s *orderService) ListForUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListNewestFirst(ctx)
}

// UpdateStatus moves an order to one of the known statuses. Any transition is allowed.
func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, errors.ErrInvalidStatus
	}
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, id)
}
