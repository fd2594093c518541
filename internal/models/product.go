package models

import "time"

// Product represents a product in the store.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Inventory   int       `json:"inventory"`
	LastUpdated time.Time `json:"lastUpdated"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
}

// ProductFormData is the already-validated input for creating a product.
type ProductFormData struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Inventory   int
	ImageURL    *string
}

// ProductUpdate carries the fields of a partial update. A nil field is left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Inventory   *int
	ImageURL    *string
}

// IsEmpty reports whether the update sets no field at all.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Category == nil && u.Inventory == nil && u.ImageURL == nil
}

// IsLowStock reports whether the product has between 1 and 10 units left.
func (p Product) IsLowStock() bool {
	return p.Inventory > 0 && p.Inventory <= 10
}

// IsOutOfStock reports whether the product has no units left.
func (p Product) IsOutOfStock() bool {
	return p.Inventory == 0
}
