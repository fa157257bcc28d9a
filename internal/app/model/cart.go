package model

// CartItem is one line of a session cart. Price is a snapshot of the
// product's effective price at the time the line was first added; later adds
// of the same product only bump the quantity and never refresh the price.
type CartItem struct {
	ID        string  `json:"id"` // "<product_id>-<unix millis at creation>"
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Subtotal is the line total (unit price times quantity).
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
