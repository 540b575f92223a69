// internal/domain/product/entity.go
package product

import "time"

// Variant is a purchasable variation of a product
type Variant struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// Product is a catalog entry
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Images      []string  `json:"images,omitempty"`
	VendorID    uint      `json:"vendor_id"`
	VendorName  string    `json:"vendor_name,omitempty"`
	Category    string    `json:"category,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	ReviewCount int       `json:"review_count,omitempty"`
	InStock     bool      `json:"in_stock"`
	Variants    []Variant `json:"variants,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
