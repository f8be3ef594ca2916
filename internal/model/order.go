package model

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists the statuses offered to administrators, in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderItem is a line of an order, copied from the cart at checkout.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is an immutable purchase record; only Status changes after creation.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	CustomerName    string        `json:"customerName"`
	Items           []OrderItem   `json:"items"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       string        `json:"createdAt"`
	ShippingAddress Address       `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	out := o
	out.Items = append([]OrderItem{}, o.Items...)
	return out
}
