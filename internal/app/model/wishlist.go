package model

import (
	"time"
)

// WishlistItem is a saved product reference. Display fields are refreshed
// when the same product is saved again, but ID and AddedAt always keep the
// values from the first save.
type WishlistItem struct {
	ID               string    `json:"id"` // "wishlist-<product_id>"
	ProductID        string    `json:"product_id"`
	Title            string    `json:"title"`
	Price            float64   `json:"price"`
	SalePrice        *float64  `json:"sale_price,omitempty"`
	Image            string    `json:"image,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	Category         Category  `json:"category"`
	Rating           float64   `json:"rating"`
	AddedAt          time.Time `json:"added_at"`
}

// EffectivePrice mirrors Product.EffectivePrice for saved entries.
func (i WishlistItem) EffectivePrice() float64 {
	if i.SalePrice != nil {
		return *i.SalePrice
	}
	return i.Price
}
