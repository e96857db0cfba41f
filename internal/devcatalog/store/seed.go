package store

import (
	"time"

	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/google/uuid"
)

// SampleProducts returns a small fixed catalog used when the backend starts with seeding enabled.
func SampleProducts() []product.Product {
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	mk := func(title, category string, price, selling float64, available bool) product.Product {
		return product.Product{
			ID:           uuid.NewString(),
			Title:        title,
			Price:        price,
			SellingPrice: selling,
			Description:  title + " from the sample catalog",
			Images:       []product.Image{{Path: "uploads/placeholder.png", ID: uuid.NewString()}},
			Category:     product.Category{Name: category, ID: uuid.NewString()},
			IsAvailable:  available,
			CreatedAt:    created,
			UpdatedAt:    created,
		}
	}
	return []product.Product{
		mk("Wireless Mouse", "Electronics", 29.99, 24.99, true),
		mk("Mechanical Keyboard", "Electronics", 119.00, 99.00, true),
		mk("Desk Lamp", "Home", 49.50, 39.90, false),
		mk("Notebook A5", "Stationery", 6.00, 4.50, true),
	}
}
