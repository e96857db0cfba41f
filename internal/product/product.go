package product

import "time"

// Image is a product picture as stored by the catalog backend.
type Image struct {
	Path string `json:"path"`
	ID   string `json:"_id,omitempty"`
}

// Category is the denormalized category reference embedded in a product.
type Category struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Product is the catalog entry as returned by the backend.
// Version is the backend's revision counter and is bumped on every mutation.
type Product struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	SellingPrice float64   `json:"sellingPrice"`
	Description  string    `json:"description"`
	Images       []Image   `json:"image"`
	Category     Category  `json:"category"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Version      int       `json:"__v"`
}

// ProductPatch carries the fields an admin may edit. Nil fields are left untouched.
type ProductPatch struct {
	Title        *string  `json:"title,omitempty"        validate:"omitnil,min=1,max=200"`
	Price        *float64 `json:"price,omitempty"        validate:"omitnil,gte=0"`
	SellingPrice *float64 `json:"sellingPrice,omitempty" validate:"omitnil,gte=0"`
	Description  *string  `json:"description,omitempty"  validate:"omitnil,max=5000"`
	IsAvailable  *bool    `json:"isAvailable,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Price == nil && p.SellingPrice == nil && p.Description == nil && p.IsAvailable == nil
}

// StockUpdate is the body of a stock availability change.
type StockUpdate struct {
	IsAvailable bool `json:"isAvailable"`
}

type listEnvelope struct {
	Products []Product `json:"products"`
}

type itemEnvelope struct {
	Product *Product `json:"product"`
}
