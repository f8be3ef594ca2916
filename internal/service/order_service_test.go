package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(MockOrderRepository)
		_, err := NewOrderService(repo).UpdateStatus(ctx, "ORD-1", "Lost")
		assert.ErrorIs(t, err, errors.ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("unknown order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, "ORD-x").Return(nil, errors.ErrOrderNotFound)
		_, err := NewOrderService(repo).UpdateStatus(ctx, "ORD-x", model.OrderStatusShipped)
		assert.ErrorIs(t, err, errors.ErrOrderNotFound)
	})

	t.Run("touches only the target order", func(t *testing.T) {
		f := newFixture(t)
		first := model.Order{ID: "ORD-1", UserID: "2", Status: model.OrderStatusPending, TotalPrice: 20, Items: []model.OrderItem{{ProductID: "p1", Quantity: 2, Price: 10}}}
		second := model.Order{ID: "ORD-2", UserID: "2", Status: model.OrderStatusPending, TotalPrice: 5, Items: []model.OrderItem{}}
		require.NoError(t, f.store.AddOrder(ctx, first))
		require.NoError(t, f.store.AddOrder(ctx, second))

		got, err := NewOrderService(repository.NewOrderRepository(f.store)).UpdateStatus(ctx, "ORD-1", model.OrderStatusShipped)
		require.NoError(t, err)

		want := first
		want.Status = model.OrderStatusShipped
		assert.Equal(t, &want, got)
		other, _ := f.store.FindOrder("ORD-2")
		assert.Equal(t, second, other)
	})
}

func TestOrderService_Lists(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrderRepository)
	repo.On("ListByUser", ctx, "2").Return([]model.Order{{ID: "ORD-2"}}, nil)
	repo.On("ListNewestFirst", ctx).Return([]model.Order{{ID: "ORD-3"}, {ID: "ORD-2"}}, nil)
	svc := NewOrderService(repo)

	mine, err := svc.ListForUser(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-3", all[0].ID)
}
