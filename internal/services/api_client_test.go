package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soap-storefront/internal/models"
)

func TestAPIClient_DecodesEnvelopeAndBareBodies(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products":
			w.Write([]byte(`{"success":true,"data":[{"_id":"p1","name":"Neem","price":250,"stock":4}]}`))
		case "/api/products/p2":
			w.Write([]byte(`{"_id":"p2","name":"Tulsi","price":300}`))
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewProductService(api)

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Neem", products[0].Name)
	assert.Equal(t, 250, products[0].Price)

	product, err := svc.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Tulsi", product.Name)
}

func TestAPIClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"message":"Product not found"}`, sentinel: models.ErrNotFound, message: "Product not found"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"jwt expired"}`, sentinel: models.ErrUnauthorized, message: "jwt expired"},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, sentinel: models.ErrForbidden},
		{name: "bad request", status: http.StatusBadRequest, body: `not json`, sentinel: models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := api.do(context.Background(), http.MethodGet, "/api/anything", "", nil, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, orDefault(tt.message, "fallback"), UserMessage(err, "fallback"))
		})
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func TestAPIClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, NewProductService(api).Delete(context.Background(), "tok-123", "p1"))
	assert.Equal(t, "Bearer tok-123", gotAuth)

	require.NoError(t, NewReviewService(api).MarkHelpful(context.Background(), "r1"))
	assert.Empty(t, gotAuth)
}

func TestAPIClient_PaginatedList(t *testing.T) {
	var gotQuery string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/admin/all", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[{"_id":"o1","orderNumber":"ORD-1","orderStatus":"shipped","totalAmount":1300}],
			"pagination":{"page":2,"limit":10,"total":11,"totalPages":2}}`))
	})

	page, err := NewOrderService(api).AdminList(context.Background(), "tok", models.AdminOrderFilter{
		Search: "asha",
		Status: "shipped",
		Page:   2,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, models.OrderShipped, page.Data[0].OrderStatus)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 10, Total: 11, TotalPages: 2}, page.Pagination)
	assert.True(t, page.Pagination.HasPrev())
	assert.False(t, page.Pagination.HasNext())
	assert.Contains(t, gotQuery, "search=asha")
	assert.Contains(t, gotQuery, "status=shipped")
	assert.NotContains(t, gotQuery, "paymentStatus")
}

func TestProductService_CreateSendsMultipart(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Neem Soap", r.FormValue("name"))
		assert.Equal(t, "250", r.FormValue("price"))
		assert.Equal(t, "neem,tulsi", r.FormValue("ingredients"))
		assert.Empty(t, r.FormValue("originalPrice"))

		file, header, err := r.FormFile("images")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "neem.jpg", header.Filename)
		assert.Equal(t, []byte("jpeg-bytes"), data)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"_id":"new1","name":"Neem Soap"}}`))
	})

	form := models.ProductForm{Name: "Neem Soap", Description: "d", Price: 250, Category: "Face", Ingredients: []string{"neem", "tulsi"}}
	image := &ImageUpload{Filename: "neem.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")}

	product, err := NewProductService(api).Create(context.Background(), "tok", form, image)
	require.NoError(t, err)
	assert.Equal(t, "new1", product.ID)
}

func TestProductService_GetNotFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := NewProductService(api).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAPIClient_ContextCancellation(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProductService(api).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAPIClient_TransportErrorsCarryCallSite(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	api := NewAPIClientWithHTTPClient(server.URL, server.Client(), quietLogger())
	server.Close()

	err := api.do(context.Background(), http.MethodGet, "/api/products", "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /api/products")

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
	assert.Equal(t, urlErr, pkgerrors.Cause(err))
	assert.Contains(t, fmt.Sprintf("%+v", err), "(*APIClient).send")
}

func TestAPIClient_DecodeErrorIsWrapped(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[`))
	})

	var out []models.Product
	err := api.do(context.Background(), http.MethodGet, "/api/products", "", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode GET /api/products response")
	assert.Contains(t, fmt.Sprintf("%+v", err), "(*APIClient).send")
}
