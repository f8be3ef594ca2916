package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	recentOrderWindow = 5
	noSalesInsight    = "No sales data yet. Start marketing your products to see insights!"
)

// Dashboard is the admin overview.
type Dashboard struct {
	TotalRevenue   float64        `json:"totalRevenue"`
	TotalOrders    int            `json:"totalOrders"`
	PendingOrders  int            `json:"pendingOrders"`
	OutOfStock     int            `json:"outOfStock"`
	CategoryCounts map[string]int `json:"categoryCounts"`
	Insight        string         `json:"insight"`
}

// DashboardService computes the admin overview.
type DashboardService interface {
	Summary(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	insight     Insight
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, insight Insight) DashboardService {
	return &dashboardService{productRepo: productRepo, orderRepo: orderRepo, insight: insight}
}

func (s *dashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	d := &Dashboard{
		TotalOrders:    len(orders),
		CategoryCounts: make(map[string]int),
	}
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalPrice))
		if o.Status == model.OrderStatusPending {
			d.PendingOrders++
		}
	}
	d.TotalRevenue = revenue.InexactFloat64()
	for _, p := range products {
		if p.Stock == 0 {
			d.OutOfStock++
		}
		d.CategoryCounts[p.Category]++
	}

	if len(orders) == 0 {
		d.Insight = noSalesInsight
	} else {
		d.Insight = s.insight.AnalyzePerformance(ctx, RecentOrderSummary(orders))
	}
	return d, nil
}

// RecentOrderSummary describes the last five orders placed, oldest first,
// as "<lines> items for $<total>" joined by commas.
func RecentOrderSummary(orders []model.Order) string {
	if len(orders) > recentOrderWindow {
		orders = orders[len(orders)-recentOrderWindow:]
	}
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		parts = append(parts, fmt.Sprintf("%d items for $%s", len(o.Items), strconv.FormatFloat(o.TotalPrice, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}
