package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storefront/internal/errors"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/session"
)

const publishTimeout = 3 * time.Second

// CheckoutRequest selects the shipping address and payment method. Empty ids
// pick the user's default, else the first one on file.
type CheckoutRequest struct {
	AddressID       string
	PaymentMethodID string
}

// CheckoutService turns a session cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*model.Order, error)
}

type checkoutService struct {
	sessions  *session.Manager
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	sessions *session.Manager,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	publisher messaging.Publisher,
	m *metrics.Metrics,
) CheckoutService {
	return &checkoutService{
		sessions:  sessions,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// Checkout snapshots the cart, address and payment method into a Pending
// order and stores it. The cart ends up empty only when the order was stored.
// Stock is not adjusted.
func (s *checkoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*model.Order, error) {
	sess, err := s.sessions.Open(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	current, ok := sess.CurrentUser()
	if !ok {
		return nil, errors.ErrUnauthenticated
	}
	user, err := s.userRepo.FindByID(ctx, current.ID)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}

	if len(sess.Cart()) == 0 {
		return nil, errors.ErrEmptyCart
	}

	address, ok := selectAddress(user, req.AddressID)
	if !ok {
		return nil, errors.ErrAddressNotFound
	}
	payment, ok := selectPaymentMethod(user, req.PaymentMethodID)
	if !ok {
		return nil, errors.ErrPaymentMethodNotFound
	}

	// The cart is emptied before the order is stored so a retry after a
	// failed write cannot place the order twice.
	cart, err := sess.TakeCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, errors.ErrEmptyCart
	}

	items := make([]model.OrderItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, line.OrderItem())
	}
	order := model.Order{
		ID:              "ORD-" + uuid.NewString(),
		UserID:          user.ID,
		CustomerName:    user.Name,
		Items:           items,
		TotalPrice:      session.Total(cart),
		Status:          model.OrderStatusPending,
		CreatedAt:       s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		ShippingAddress: address,
		PaymentMethod:   payment,
	}

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		if rerr := sess.RestoreCart(ctx, cart); rerr != nil {
			slog.Error("Order failed and cart not restored", "session", sessionID, "err", rerr)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.metrics.OrderPlaced(order.TotalPrice)
	s.publish(ctx, order)

	return &order, nil
}

// publish sends the order event without letting broker trouble fail the checkout.
func (s *checkoutService) publish(ctx context.Context, order model.Order) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := messaging.OrderPlaced{
		OrderID:    order.ID,
		UserID:     order.UserID,
		ItemCount:  len(order.Items),
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.PublishEvent(pubCtx, messaging.TopicOrdersPlaced, order.ID, event); err != nil {
		slog.Error("Failed to publish order event", "order", order.ID, "err", err)
		s.metrics.PublishFailed()
	}
}

func selectAddress(user *model.User, id string) (model.Address, bool) {
	if id == "" {
		return user.DefaultAddress()
	}
	return user.FindAddress(id)
}

func selectPaymentMethod(user *model.User, id string) (model.PaymentMethod, bool) {
	if id == "" {
		return user.DefaultPaymentMethod()
	}
	return user.FindPaymentMethod(id)
}
