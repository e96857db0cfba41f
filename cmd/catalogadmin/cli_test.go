package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abgdnv/gocommerce-admin/internal/devcatalog/app"
	dcconfig "github.com/abgdnv/gocommerce-admin/internal/devcatalog/config"
	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/abgdnv/gocommerce-admin/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startBackend serves a seeded development catalog and points the CLI at it through the environment.
func startBackend(t *testing.T) {
	t.Helper()
	cfg := &dcconfig.Config{
		Auth: config.AuthConfig{
			Secret:   strings.Repeat("s", 32),
			Issuer:   "cli-test",
			TTL:      time.Hour,
			Username: "admin",
			Password: "secret",
		},
		Seed: true,
	}
	deps, err := app.SetupDependencies(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	srv := httptest.NewServer(app.SetupHttpHandler(deps))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CATALOGADMIN_API_BASEURL", srv.URL+"/api")
	t.Setenv("CATALOGADMIN_TOKENSTORE_DRIVER", config.TokenStoreSQLite)
	t.Setenv("CATALOGADMIN_TOKENSTORE_SQLITE_PATH", filepath.Join(dir, "token.db"))
	t.Setenv("CATALOGADMIN_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func listProducts(t *testing.T) []product.Product {
	t.Helper()
	out, err := execute(t, "products", "list", "--json")
	require.NoError(t, err)
	var list []product.Product
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.NotEmpty(t, list)
	return list
}

func TestCLI_ListTable(t *testing.T) {
	startBackend(t)

	out, err := execute(t, "products", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Wireless Mouse")
	assert.Contains(t, out, "out of stock")
}

func TestCLI_MutationsRequireLogin(t *testing.T) {
	startBackend(t)
	id := listProducts(t)[0].ID

	_, err := execute(t, "products", "update", id, "--title", "Renamed")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "catalogadmin login")
}

func TestCLI_LoginThenEdit(t *testing.T) {
	startBackend(t)
	list := listProducts(t)
	first, second := list[0], list[1]

	out, err := execute(t, "login", "--username", "admin", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")

	out, err = execute(t, "products", "update", first.ID, "--title", "Renamed Mouse", "--selling-price", "19.5", "--json")
	require.NoError(t, err)
	var updated product.Product
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "Renamed Mouse", updated.Title)
	assert.Equal(t, 19.5, updated.SellingPrice)
	assert.Equal(t, first.Price, updated.Price)

	out, err = execute(t, "products", "toggle", first.ID)
	require.NoError(t, err)
	assert.Contains(t, out, stockLabel(!first.IsAvailable))

	out, err = execute(t, "products", "stock", "--available=false", first.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "out of stock"))

	_, err = execute(t, "products", "delete", second.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err = execute(t, "products", "delete", second.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = execute(t, "products", "get", second.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	out, err = execute(t, "products", "get", first.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed Mouse")
	assert.Contains(t, out, "Revision:")
}

func TestCLI_StockReportsPartialFailure(t *testing.T) {
	startBackend(t)
	id := listProducts(t)[0].ID
	_, err := execute(t, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)

	out, err := execute(t, "products", "stock", "--available=true", id, "00000000-0000-0000-0000-000000000001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, id)
}

func TestCLI_TokenSetAndClear(t *testing.T) {
	startBackend(t)
	id := listProducts(t)[0].ID

	out, err := execute(t, "token", "set", "not-a-jwt")
	require.NoError(t, err)
	assert.Contains(t, out, "Token stored")

	_, err = execute(t, "products", "stock", "--available=false", id)
	require.Error(t, err, "a garbage token is sent and rejected by the backend")

	out, err = execute(t, "token", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Token cleared")

	_, err = execute(t, "products", "list")
	assert.NoError(t, err, "reads work without a token")
}

func TestCLI_LoginRejected(t *testing.T) {
	startBackend(t)

	_, err := execute(t, "login", "--username", "admin", "--password", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
}

func TestCLI_UpdateNeedsAField(t *testing.T) {
	startBackend(t)

	_, err := execute(t, "products", "update", "some-id")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestCLI_BaseURLOverrideIsValidated(t *testing.T) {
	startBackend(t)

	_, err := execute(t, "--base-url", "not a url", "products", "list")

	assert.Error(t, err)
}
