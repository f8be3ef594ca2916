package model

// PaymentMethodTypeCard is the only payment method type.
const PaymentMethodTypeCard = "card"

// PaymentMethod represents a saved card. Only the last four digits are kept.
type PaymentMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	Expiry    string `json:"expiry"` // MM/YY format
	IsDefault bool   `json:"isDefault"`
}
