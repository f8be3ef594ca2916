package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	products.On("List", ctx).Return([]model.Product{
		{ID: "a", Category: "Bags", Stock: 0},
		{ID: "b", Category: "Bags", Stock: 3},
		{ID: "c", Category: "Books", Stock: 1},
	}, nil)
	orders := new(MockOrderRepository)
	orders.On("List", ctx).Return([]model.Order{
		{ID: "1", TotalPrice: 0.1, Status: model.OrderStatusPending, Items: []model.OrderItem{{}, {}}},
		{ID: "2", TotalPrice: 0.2, Status: model.OrderStatusShipped, Items: []model.OrderItem{{}}},
	}, nil)
	ins := new(MockInsight)
	ins.On("AnalyzePerformance", ctx, "2 items for $0.1, 1 items for $0.2").Return("Bags are trending.")

	d, err := NewDashboardService(products, orders, ins).Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0.3, d.TotalRevenue)
	assert.Equal(t, 2, d.TotalOrders)
	assert.Equal(t, 1, d.PendingOrders)
	assert.Equal(t, 1, d.OutOfStock)
	assert.Equal(t, map[string]int{"Bags": 2, "Books": 1}, d.CategoryCounts)
	assert.Equal(t, "Bags are trending.", d.Insight)
	ins.AssertExpectations(t)
}

func TestDashboardService_NoOrders(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	products.On("List", ctx).Return([]model.Product{}, nil)
	orders := new(MockOrderRepository)
	orders.On("List", ctx).Return([]model.Order{}, nil)
	ins := new(MockInsight)

	d, err := NewDashboardService(products, orders, ins).Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "No sales data yet. Start marketing your products to see insights!", d.Insight)
	ins.AssertNotCalled(t, "AnalyzePerformance")
}

func TestRecentOrderSummary_KeepsLastFive(t *testing.T) {
	var orders []model.Order
	for i := 1; i <= 7; i++ {
		orders = append(orders, model.Order{TotalPrice: float64(i * 10), Items: make([]model.OrderItem, i)})
	}

	got := RecentOrderSummary(orders)

	assert.Equal(t, "3 items for $30, 4 items for $40, 5 items for $50, 6 items for $60, 7 items for $70", got)
}
