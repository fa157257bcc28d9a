package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/app/repository"
	"github.com/kishorkishor/storefront-backend/internal/db"
	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/internal/session"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *recordingPublisher) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	catalog := NewCatalogService(
		&stubSource{products: catalogFixture()},
		repository.NewProductRepository(testDB),
	)
	require.NoError(t, catalog.Refresh(context.Background()))

	publisher := &recordingPublisher{}
	sessions := session.NewManager(persist.MemoryFactory(), publisher)
	return NewWishlistService(catalog, sessions), publisher
}

func TestWishlistService_AddCopiesProductFields(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)

	view, err := svc.Add("s1", "p2")
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	item := view.Items[0]
	assert.Equal(t, "wishlist-p2", item.ID)
	assert.Equal(t, "Running Shoes", item.Title)
	assert.Equal(t, 89.99, item.Price)
	require.NotNil(t, item.SalePrice)
	assert.Equal(t, 59.99, *item.SalePrice)
	assert.False(t, item.AddedAt.IsZero())
}

func TestWishlistService_AddUnknownProduct(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)

	_, err := svc.Add("s1", "no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_AddIsDeduplicated(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)

	_, err := svc.Add("s1", "p1")
	require.NoError(t, err)
	view, err := svc.Add("s1", "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, view.Count)
}

func TestWishlistService_Toggle(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)

	_, saved, err := svc.Toggle("s1", "p1")
	require.NoError(t, err)
	assert.True(t, saved)

	contains, err := svc.Contains("s1", "p1")
	require.NoError(t, err)
	assert.True(t, contains)

	view, saved, err := svc.Toggle("s1", "p1")
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 0, view.Count)
}

func TestWishlistService_ListWithQueryParams(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)

	_, err := svc.Add("s1", "p1")
	require.NoError(t, err)
	_, err = svc.Add("s1", "p2")
	require.NoError(t, err)

	view, err := svc.List("s1", query.Params{Search: "running"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p2", view.Items[0].ProductID)

	// Count reflects the whole wishlist, not the filtered slice.
	assert.Equal(t, 2, view.Count)
}

func TestWishlistService_ClearAndBadges(t *testing.T) {
	svc, publisher := setupWishlistServiceTest(t)

	_, err := svc.Add("s1", "p1")
	require.NoError(t, err)

	push, ok := publisher.last()
	require.True(t, ok)
	assert.Equal(t, 1, push.wishlistCount)

	view, err := svc.Clear("s1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Count)

	push, ok = publisher.last()
	require.True(t, ok)
	assert.Equal(t, 0, push.wishlistCount)
}
