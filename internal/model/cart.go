package model

// CartLine is a product in a session cart together with its quantity.
// It lives only in session state and becomes an OrderItem at checkout.
// The embedded product fields are flattened next to quantity when encoded.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Clone returns a deep copy of the line.
func (l CartLine) Clone() CartLine {
	return CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
}

// OrderItem snapshots the line for an order.
func (l CartLine) OrderItem() OrderItem {
	return OrderItem{
		ProductID: l.ID,
		Name:      l.Name,
		Price:     l.Price,
		Quantity:  l.Quantity,
	}
}
