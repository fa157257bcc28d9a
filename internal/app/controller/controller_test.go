package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/repository"
	"github.com/kishorkishor/storefront-backend/internal/app/service"
	"github.com/kishorkishor/storefront-backend/internal/db"
	"github.com/kishorkishor/storefront-backend/internal/middleware"
	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/internal/session"
)

const testSessionID = "test-session"

// fixedSource is a CatalogSource serving a fixed product slice.
type fixedSource struct {
	products []model.Product
}

func (s *fixedSource) FetchAll(ctx context.Context) ([]model.Product, error) {
	return s.products, nil
}

func (s *fixedSource) FetchByID(ctx context.Context, id string) (*model.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func controllerFixture() []model.Product {
	sale := 59.99
	return []model.Product{
		{ID: "p1", Title: "Wireless Headphones", Slug: "wireless-headphones", Price: 199.99, Stock: 12,
			Category: model.Category{ID: "electronics", Slug: "electronics"}, Status: model.ProductStatusPublished},
		{ID: "p2", Title: "Running Shoes", Slug: "running-shoes", Price: 89.99, SalePrice: &sale, Stock: 5,
			Category: model.Category{ID: "footwear", Slug: "footwear"}, Status: model.ProductStatusPublished},
		{ID: "p3", Title: "Espresso Machine", Slug: "espresso-machine", Price: 299.00, Stock: 3,
			Category: model.Category{ID: "home", Slug: "home-kitchen"}, Status: model.ProductStatusPublished},
	}
}

type testEnv struct {
	catalog  service.CatalogService
	cart     service.CartService
	wishlist service.WishlistService
	router   *gin.Engine
}

func setupControllerTest(t *testing.T) *testEnv {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	catalog := service.NewCatalogService(
		&fixedSource{products: controllerFixture()},
		repository.NewProductRepository(testDB),
	)
	require.NoError(t, catalog.Refresh(context.Background()))

	sessions := session.NewManager(persist.MemoryFactory(), nil)
	cart := service.NewCartService(catalog, sessions)
	wishlist := service.NewWishlistService(catalog, sessions)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Pin the session so requests hit the same cart.
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionIDKey, testSessionID)
		c.Next()
	})

	return &testEnv{catalog: catalog, cart: cart, wishlist: wishlist, router: router}
}
