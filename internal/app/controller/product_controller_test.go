package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductController_ListProducts(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.GET("/products", ctrl.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?sort_by=price&sort_order=asc&page=1&limit=2", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data, 2)
	// Cheapest effective price first: p2 is 59.99 on sale.
	assert.Equal(t, "p2", resp.Data[0].ID)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestProductController_ListProducts_Filtered(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.GET("/products", ctrl.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?category=footwear", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "p2", resp.Data[0].ID)
}

func TestProductController_GetProduct(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.GET("/products/:id", ctrl.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/p1", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Wireless Headphones", resp.Data.Title)
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.GET("/products/:id", ctrl.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.Error)
}

func TestProductController_GetProductBySlug(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.GET("/products/slug/:slug", ctrl.GetProductBySlug)

	req := httptest.NewRequest(http.MethodGet, "/products/slug/espresso-machine", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "p3", resp.Data.ID)
}

func TestProductController_CreateProduct(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.POST("/admin/products", ctrl.CreateProduct)

	body, _ := json.Marshal(map[string]interface{}{
		"id":    "p9",
		"title": "New Product",
		"slug":  "new-product",
		"price": 25.00,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	product, err := env.catalog.Get("p9")
	require.NoError(t, err)
	assert.Equal(t, "New Product", product.Title)
}

func TestProductController_CreateProduct_RejectsBadSalePrice(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.POST("/admin/products", ctrl.CreateProduct)

	body, _ := json.Marshal(map[string]interface{}{
		"id":         "p9",
		"title":      "New Product",
		"slug":       "new-product",
		"price":      25.00,
		"sale_price": 30.00,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_ExportProducts(t *testing.T) {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.catalog)
	env.router.GET("/admin/products/export", ctrl.ExportProducts)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/export", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=products-")
	assert.NotEmpty(t, w.Body.Bytes())
}
