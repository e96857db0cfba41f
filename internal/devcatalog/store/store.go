// Package store provides an interface for catalog storage operations.
package store

import (
	"context"

	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/google/uuid"
)

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]product.Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error)

	// Update applies the non-nil fields of patch.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, patch product.ProductPatch) (*product.Product, error)

	// UpdateStock sets the availability flag.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateStock(ctx context.Context, id uuid.UUID, available bool) (*product.Product, error)

	// DeleteByID removes a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
