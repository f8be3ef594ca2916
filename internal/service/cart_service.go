package service

import (
	"context"
	"fmt"

	"storefront/internal/errors"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/session"
)

// CartView is a cart together with its derived totals.
type CartView struct {
	Items []model.CartLine `json:"items"`
	Total float64          `json:"total"`
	Count int              `json:"count"`
}

// CartService handles cart operations of a session.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID, productID string) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error)
	Clear(ctx context.Context, sessionID string) (*CartView, error)
}

type cartService struct {
	sessions    *session.Manager
	productRepo repository.ProductRepository
	metrics     *metrics.Metrics
}

// NewCartService creates a new cart service.
func NewCartService(sessions *session.Manager, productRepo repository.ProductRepository, m *metrics.Metrics) CartService {
	return &cartService{sessions: sessions, productRepo: productRepo, metrics: m}
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	sess, err := s.sessions.Open(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return viewOf(sess), nil
}

// AddItem adds one unit of a visible product.
func (s *cartService) AddItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, errors.ErrProductNotFound
	}
	return s.mutate(ctx, sessionID, "add", func(sess *session.Session) error {
		return sess.AddToCart(ctx, *product)
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	return s.mutate(ctx, sessionID, "update", func(sess *session.Session) error {
		return sess.UpdateQuantity(ctx, productID, quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	return s.mutate(ctx, sessionID, "remove", func(sess *session.Session) error {
		return sess.RemoveFromCart(ctx, productID)
	})
}

func (s *cartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	return s.mutate(ctx, sessionID, "clear", func(sess *session.Session) error {
		return sess.ClearCart(ctx)
	})
}

func (s *cartService) mutate(ctx context.Context, sessionID, op string, fn func(*session.Session) error) (*CartView, error) {
	sess, err := s.sessions.Open(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	s.metrics.CartOperation(op)
	return viewOf(sess), nil
}

func viewOf(sess *session.Session) *CartView {
	lines := sess.Cart()
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return &CartView{Items: lines, Total: session.Total(lines), Count: count}
}
