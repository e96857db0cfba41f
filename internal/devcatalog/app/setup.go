// Package app contains the application setup for the development catalog.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocommerce-admin/internal/devcatalog/config"
	"github.com/abgdnv/gocommerce-admin/internal/devcatalog/store"
	"github.com/abgdnv/gocommerce-admin/internal/devcatalog/transport/rest"
	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/abgdnv/gocommerce-admin/pkg/auth"
	"github.com/abgdnv/gocommerce-admin/pkg/server"
)

type Dependencies struct {
	Store     store.ProductStore
	Authority rest.Authority
	Logger    *slog.Logger
}

// SetupDependencies builds the in-memory store and the token authority from cfg.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	authority, err := auth.NewHMACAuthority(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token authority: %w", err)
	}
	var seed []product.Product
	if cfg.Seed {
		seed = store.SampleProducts()
	}
	return &Dependencies{
		Store:     store.NewInMemoryStore(seed),
		Authority: authority,
		Logger:    logger,
	}, nil
}

// SetupHttpHandler builds the router with middleware and catalog routes.
// Used by tests to serve the catalog from httptest.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	rest.NewHandler(deps.Store, deps.Authority, deps.Logger).RegisterRoutes(mux)
	return mux
}

// SetupHttpServer creates and configures the HTTP server for the catalog.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}
