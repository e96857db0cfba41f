package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/abgdnv/gocommerce-admin/internal/apiclient"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleProduct = `{
	"_id": "64f1c2",
	"title": "Desk Lamp",
	"price": 49.5,
	"sellingPrice": 39.9,
	"description": "LED lamp",
	"image": [{"path": "uploads/lamp.jpg", "_id": "img1"}],
	"category": {"name": "Lighting", "id": "cat7"},
	"isAvailable": true,
	"createdAt": "2024-03-01T10:00:00.000Z",
	"updatedAt": "2024-03-02T10:00:00.000Z",
	"__v": 3
}`

// MockDoer is a testify mock of Doer.
type MockDoer struct {
	mock.Mock
}

func (m *MockDoer) Do(ctx context.Context, method, path string, body any, header http.Header) (*apiclient.Response, error) {
	args := m.Called(ctx, method, path, body, header)
	resp, _ := args.Get(0).(*apiclient.Response)
	return resp, args.Error(1)
}

func jsonResponse(body string) *apiclient.Response {
	return &apiclient.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
}

func ptr[T any](v T) *T { return &v }

func newBackedService(t *testing.T, handler http.HandlerFunc) (*Service, *apiclient.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := apiclient.New(srv.URL+"/api",
		apiclient.WithTracker(&apiclient.Tracker{}),
		apiclient.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return NewService(c), c
}

func Test_Service_GetAll(t *testing.T) {
	testCases := []struct {
		name        string
		response    *apiclient.Response
		doErr       error
		expectedLen int
		expectError bool
	}{
		{name: "list", response: jsonResponse(`{"products":[` + sampleProduct + `]}`), expectedLen: 1},
		{name: "empty list", response: jsonResponse(`{"products":[]}`), expectedLen: 0},
		{name: "missing products key", response: jsonResponse(`{}`), expectedLen: 0},
		{name: "empty body", response: &apiclient.Response{StatusCode: http.StatusOK}, expectError: true},
		{name: "malformed body", response: jsonResponse(`{"products":`), expectError: true},
		{name: "client error", doErr: errors.New("dial tcp: refused"), expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doer := new(MockDoer)
			doer.On("Do", mock.Anything, http.MethodGet, "/products", nil, http.Header(nil)).Return(tc.response, tc.doErr)

			list, err := NewService(doer).GetAll(context.Background())

			if tc.expectError {
				require.Error(t, err)
				if tc.doErr != nil {
					assert.ErrorIs(t, err, tc.doErr)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Len(t, list, tc.expectedLen)
			doer.AssertExpectations(t)
		})
	}
}

func Test_Service_GetByID(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", mock.Anything, http.MethodGet, "/products/64f1c2", nil, http.Header(nil)).
			Return(jsonResponse(`{"product":`+sampleProduct+`}`), nil)

		p, err := NewService(doer).GetByID(context.Background(), "64f1c2")

		require.NoError(t, err)
		assert.Equal(t, "64f1c2", p.ID)
		assert.Equal(t, "Desk Lamp", p.Title)
		assert.Equal(t, 39.9, p.SellingPrice)
		assert.Equal(t, []Image{{Path: "uploads/lamp.jpg", ID: "img1"}}, p.Images)
		assert.Equal(t, "Lighting", p.Category.Name)
		assert.True(t, p.IsAvailable)
		assert.Equal(t, 3, p.Version)
		assert.Equal(t, 2024, p.CreatedAt.Year())
	})

	t.Run("bare object", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", mock.Anything, http.MethodGet, "/products/64f1c2", nil, http.Header(nil)).
			Return(jsonResponse(sampleProduct), nil)

		p, err := NewService(doer).GetByID(context.Background(), "64f1c2")

		require.NoError(t, err)
		assert.Equal(t, "Desk Lamp", p.Title)
	})

	t.Run("id is path escaped", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", mock.Anything, http.MethodGet, "/products/a%2Fb", nil, http.Header(nil)).
			Return(jsonResponse(`{"product":`+sampleProduct+`}`), nil)

		_, err := NewService(doer).GetByID(context.Background(), "a/b")

		require.NoError(t, err)
		doer.AssertExpectations(t)
	})

	t.Run("empty id", func(t *testing.T) {
		doer := new(MockDoer)

		_, err := NewService(doer).GetByID(context.Background(), "  ")

		assert.ErrorIs(t, err, ErrEmptyID)
		doer.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty body", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", mock.Anything, http.MethodGet, "/products/x", nil, http.Header(nil)).
			Return(&apiclient.Response{StatusCode: http.StatusOK}, nil)

		_, err := NewService(doer).GetByID(context.Background(), "x")

		assert.ErrorIs(t, err, apiclient.ErrEmptyBody)
	})
}

func Test_Service_Update(t *testing.T) {
	patch := ProductPatch{Title: ptr("Desk Lamp"), SellingPrice: ptr(39.9)}

	t.Run("sends only set fields", func(t *testing.T) {
		var body map[string]any
		svc, _ := newBackedService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/products/64f1c2", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"product":` + sampleProduct + `}`))
		})

		p, err := svc.Update(context.Background(), "64f1c2", patch)

		require.NoError(t, err)
		assert.Equal(t, "Desk Lamp", p.Title)
		assert.Equal(t, map[string]any{"title": "Desk Lamp", "sellingPrice": 39.9}, body)
	})

	t.Run("empty success body", func(t *testing.T) {
		svc, _ := newBackedService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		p, err := svc.Update(context.Background(), "64f1c2", patch)

		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("status error is reachable", func(t *testing.T) {
		svc, _ := newBackedService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := svc.Update(context.Background(), "64f1c2", patch)

		var se *apiclient.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.Response.StatusCode)
	})

	rejected := []struct {
		name  string
		patch ProductPatch
		want  error
	}{
		{name: "empty patch", patch: ProductPatch{}, want: ErrEmptyPatch},
		{name: "blank title", patch: ProductPatch{Title: ptr("")}},
		{name: "negative price", patch: ProductPatch{Price: ptr(-1.0)}},
		{name: "negative selling price", patch: ProductPatch{SellingPrice: ptr(-0.01)}},
	}
	for _, tc := range rejected {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			doer := new(MockDoer)

			_, err := NewService(doer).Update(context.Background(), "64f1c2", tc.patch)

			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			} else {
				var ve validator.ValidationErrors
				assert.ErrorAs(t, err, &ve)
			}
			doer.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("zero price is allowed", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", mock.Anything, http.MethodPut, "/products/1", mock.Anything, http.Header(nil)).
			Return(&apiclient.Response{StatusCode: http.StatusOK}, nil)

		_, err := NewService(doer).Update(context.Background(), "1", ProductPatch{Price: ptr(0.0)})

		assert.NoError(t, err)
	})
}

func Test_Service_UpdateStock(t *testing.T) {
	doer := new(MockDoer)
	doer.On("Do", mock.Anything, http.MethodPut, "/products/64f1c2/stock", StockUpdate{IsAvailable: false}, http.Header(nil)).
		Return(jsonResponse(`{"product":{"_id":"64f1c2","isAvailable":false,"__v":4}}`), nil)

	p, err := NewService(doer).UpdateStock(context.Background(), "64f1c2", StockUpdate{IsAvailable: false})

	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, 4, p.Version)
	doer.AssertExpectations(t)
}

func Test_Service_DeleteByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotMethod, gotPath string
		svc, c := newBackedService(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		err := svc.DeleteByID(context.Background(), "64f1c2")

		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/api/products/64f1c2", gotPath)
		assert.False(t, c.IsLoading())
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newBackedService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := svc.DeleteByID(context.Background(), "missing")

		code, ok := apiclient.StatusCode(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("empty id", func(t *testing.T) {
		assert.ErrorIs(t, NewService(new(MockDoer)).DeleteByID(context.Background(), ""), ErrEmptyID)
	})
}

// Test_Service_UpdateStockAndGetAllConcurrently covers two calls issued together: both are
// dispatched independently, both are counted while outstanding and the count drains to zero.
func Test_Service_UpdateStockAndGetAllConcurrently(t *testing.T) {
	var arrived sync.WaitGroup
	arrived.Add(2)
	gate := make(chan struct{})

	svc, c := newBackedService(t, func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		<-gate
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			_, _ = w.Write([]byte(`{"product":{"_id":"p1","isAvailable":false}}`))
			return
		}
		_, _ = w.Write([]byte(`{"products":[{"_id":"p1","isAvailable":true}]}`))
	})

	var (
		wg       sync.WaitGroup
		updated  *Product
		list     []Product
		stockErr error
		listErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		updated, stockErr = svc.UpdateStock(context.Background(), "p1", StockUpdate{IsAvailable: false})
	}()
	go func() {
		defer wg.Done()
		list, listErr = svc.GetAll(context.Background())
	}()

	arrived.Wait()
	assert.True(t, c.IsLoading())
	assert.Equal(t, int64(2), c.Tracker().InFlight())
	close(gate)
	wg.Wait()

	require.NoError(t, stockErr)
	require.NoError(t, listErr)
	assert.False(t, updated.IsAvailable)
	assert.Len(t, list, 1)
	assert.False(t, c.IsLoading())
}
