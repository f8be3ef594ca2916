package messaging

import "context"

// TopicOrdersPlaced receives an OrderPlaced event for every checkout.
const TopicOrdersPlaced = "orders.placed"

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// OrderPlaced is published after an order has been stored.
type OrderPlaced struct {
	OrderID    string  `json:"orderId"`
	UserID     string  `json:"userId"`
	ItemCount  int     `json:"itemCount"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. Used when no
// brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishEvent(context.Context, string, string, any) error {
	return nil
}
