// Package product provides the catalog operations used by the admin panel.
package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/abgdnv/gocommerce-admin/internal/apiclient"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyID is returned before dispatch when a product id is blank.
	ErrEmptyID = errors.New("product id must not be empty")
	// ErrEmptyPatch is returned before dispatch when an update changes no field.
	ErrEmptyPatch = errors.New("product patch has no fields set")
)

// Doer issues a request against the catalog API. *apiclient.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, body any, header http.Header) (*apiclient.Response, error)
}

// ProductService defines the catalog operations available to the admin panel.
type ProductService interface {
	// GetAll returns every product. The slice is never nil on success.
	GetAll(ctx context.Context) ([]Product, error)

	// GetByID returns a single product.
	GetByID(ctx context.Context, id string) (*Product, error)

	// Update applies patch to the product and returns the stored result.
	// A success response without a body yields (nil, nil).
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)

	// UpdateStock sets the availability flag of the product.
	// A success response without a body yields (nil, nil).
	UpdateStock(ctx context.Context, id string, stock StockUpdate) (*Product, error)

	// DeleteByID removes the product.
	DeleteByID(ctx context.Context, id string) error
}

// Service implements ProductService over the shared API client.
type Service struct {
	doer     Doer
	validate *validator.Validate
}

// NewService creates a Service dispatching through doer.
func NewService(doer Doer) *Service {
	return &Service{
		doer:     doer,
		validate: validator.New(),
	}
}

var _ ProductService = (*Service)(nil)

func (s *Service) GetAll(ctx context.Context) ([]Product, error) {
	resp, err := s.doer.Do(ctx, http.MethodGet, "/products", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	var env listEnvelope
	if err := resp.Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	if env.Products == nil {
		env.Products = []Product{}
	}
	return env.Products, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := productPath(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.doer.Do(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if resp.Empty() {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, apiclient.ErrEmptyBody)
	}
	return decodeProduct(resp, id)
}

func (s *Service) Update(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	p, err := productPath(id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, fmt.Errorf("invalid product patch: %w", err)
	}
	resp, err := s.doer.Do(ctx, http.MethodPut, p, patch, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	if resp.Empty() {
		return nil, nil
	}
	return decodeProduct(resp, id)
}

func (s *Service) UpdateStock(ctx context.Context, id string, stock StockUpdate) (*Product, error) {
	p, err := productPath(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.doer.Do(ctx, http.MethodPut, p+"/stock", stock, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock for product %s: %w", id, err)
	}
	if resp.Empty() {
		return nil, nil
	}
	return decodeProduct(resp, id)
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	p, err := productPath(id)
	if err != nil {
		return err
	}
	if _, err := s.doer.Do(ctx, http.MethodDelete, p, nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func productPath(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyID
	}
	return "/products/" + url.PathEscape(id), nil
}

// decodeProduct accepts both the {"product": {...}} envelope and a bare product object.
func decodeProduct(resp *apiclient.Response, id string) (*Product, error) {
	var env itemEnvelope
	if err := resp.Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	if env.Product != nil {
		return env.Product, nil
	}
	var bare Product
	if err := resp.Decode(&bare); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	return &bare, nil
}
