package model

import (
	"time"
)

type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// Category is the single category a product belongs to. Filters match it by
// ID or slug interchangeably.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductImage struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
}

type ProductAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"` // text, number, boolean, select
}

type ProductVariant struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	SKU        string             `json:"sku"`
	Price      float64            `json:"price"`
	Stock      int                `json:"stock"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
}

type ProductReview struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	Helpful   int       `json:"helpful"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog record. The JSON field names follow the upstream
// product API, so the same struct decodes upstream responses and serves our
// own list/detail endpoints. Nested collections are stored as JSON columns
// rather than join tables; the catalog is read-mostly and always served as a
// whole record.
type Product struct {
	ID                string             `gorm:"primarykey" json:"id"`
	SKU               string             `gorm:"uniqueIndex" json:"sku"`
	Title             string             `gorm:"not null" json:"title"`
	Slug              string             `gorm:"uniqueIndex" json:"slug"`
	Description       string             `gorm:"type:text" json:"description"`
	ShortDescription  string             `json:"short_description,omitempty"`
	Price             float64            `gorm:"not null" json:"price"`
	SalePrice         *float64           `json:"sale_price,omitempty"`
	Stock             int                `gorm:"default:0" json:"stock"`
	LowStockThreshold int                `json:"low_stock_threshold,omitempty"`
	Images            []ProductImage     `gorm:"serializer:json" json:"images"`
	Category          Category           `gorm:"embedded;embeddedPrefix:category_" json:"category"`
	Tags              []string           `gorm:"serializer:json" json:"tags"`
	Attributes        []ProductAttribute `gorm:"serializer:json" json:"attributes,omitempty"`
	Variants          []ProductVariant   `gorm:"serializer:json" json:"variants,omitempty"`
	Reviews           []ProductReview    `gorm:"serializer:json" json:"reviews,omitempty"`
	AverageRating     float64            `json:"average_rating"`
	ReviewCount       int                `json:"review_count"`
	Status            ProductStatus      `gorm:"type:varchar(20);default:draft" json:"status"`
	Featured          bool               `json:"featured"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the sale price when one is set, otherwise the base
// price. Every price comparison in the system (filtering, sorting, cart
// snapshots) goes through this method.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// InStock reports whether the product has any units left.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// MainImage returns the URL of the first image, or empty when the product
// has none.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
