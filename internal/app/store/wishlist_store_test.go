package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/persist"
)

func newTestWishlist(t *testing.T) *WishlistStore {
	t.Helper()
	s, err := NewWishlistStore(persist.NewMemoryStore())
	require.NoError(t, err)
	return s
}

func TestWishlistStore_AddAssignsStableID(t *testing.T) {
	s := newTestWishlist(t)
	pinned := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return pinned })

	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p1", Title: "Headphones", Price: 199.99}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "wishlist-p1", items[0].ID)
	assert.Equal(t, pinned, items[0].AddedAt)
}

func TestWishlistStore_ReAddKeepsIDAndAddedAt(t *testing.T) {
	s := newTestWishlist(t)

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return first })
	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p1", Title: "Headphones", Price: 199.99}))

	// The product is re-added later with updated display fields.
	s.SetClock(func() time.Time { return first.Add(48 * time.Hour) })
	sale := 149.99
	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p1", Title: "Headphones v2", Price: 199.99, SalePrice: &sale}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "wishlist-p1", items[0].ID)
	assert.Equal(t, first, items[0].AddedAt, "AddedAt survives a re-add")
	assert.Equal(t, "Headphones v2", items[0].Title)
	require.NotNil(t, items[0].SalePrice)
	assert.Equal(t, 149.99, *items[0].SalePrice)
	assert.Equal(t, 1, s.Count())
}

func TestWishlistStore_RemoveAndContains(t *testing.T) {
	s := newTestWishlist(t)

	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p1"}))
	assert.True(t, s.IsInWishlist("p1"))
	assert.False(t, s.IsInWishlist("p2"))

	require.NoError(t, s.Remove("p1"))
	assert.False(t, s.IsInWishlist("p1"))

	// Removing again is a no-op.
	require.NoError(t, s.Remove("p1"))
}

func TestWishlistStore_Clear(t *testing.T) {
	s := newTestWishlist(t)
	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p1"}))
	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p2"}))

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Items())
}

func TestWishlistStore_FailedSaveLeavesStateUntouched(t *testing.T) {
	backend := &flakyStore{inner: persist.NewMemoryStore()}
	s, err := NewWishlistStore(backend)
	require.NoError(t, err)
	require.NoError(t, s.Add(WishlistCandidate{ProductID: "p1", Title: "Headphones", Price: 199.99}))

	backend.fail = true
	require.Error(t, s.Add(WishlistCandidate{ProductID: "p2", Title: "Shoes", Price: 89.99}))
	require.Error(t, s.Remove("p1"))
	require.Error(t, s.Clear())

	// Live reads still match what a snapshot replay would produce.
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.IsInWishlist("p1"))
	assert.False(t, s.IsInWishlist("p2"))

	replayed, err := NewWishlistStore(backend.inner)
	require.NoError(t, err)
	items := replayed.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestWishlistStore_SnapshotRestoresAddedAtAsTime(t *testing.T) {
	dir := t.TempDir()
	factory := persist.FileFactory(dir)

	first, err := NewWishlistStore(factory("wishlist-storage:s1"))
	require.NoError(t, err)

	pinned := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first.SetClock(func() time.Time { return pinned })
	require.NoError(t, first.Add(WishlistCandidate{ProductID: "p1", Title: "Headphones"}))

	// Reload from disk: added_at must come back as a real timestamp so
	// date sorts keep working.
	second, err := NewWishlistStore(persist.FileFactory(dir)("wishlist-storage:s1"))
	require.NoError(t, err)

	items := second.Items()
	require.Len(t, items, 1)
	assert.True(t, pinned.Equal(items[0].AddedAt))
}

func TestWishlistStore_QueryFiltersAndSorts(t *testing.T) {
	s := newTestWishlist(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	clock := base
	s.SetClock(func() time.Time { return clock })

	sale := 39.99
	require.NoError(t, s.Add(WishlistCandidate{
		ProductID: "p1", Title: "Wireless Headphones", Price: 199.99, Rating: 4.5,
		Category: model.Category{ID: "electronics", Slug: "electronics"},
	}))
	clock = base.Add(time.Hour)
	require.NoError(t, s.Add(WishlistCandidate{
		ProductID: "p2", Title: "Bluetooth Speaker", Price: 49.99, SalePrice: &sale, Rating: 3.9,
		Category: model.Category{ID: "electronics", Slug: "electronics"},
	}))
	clock = base.Add(2 * time.Hour)
	require.NoError(t, s.Add(WishlistCandidate{
		ProductID: "p3", Title: "Espresso Machine", Price: 299, Rating: 4.8,
		Category: model.Category{ID: "home", Slug: "home-kitchen"},
	}))

	t.Run("search by title", func(t *testing.T) {
		items := s.Query(query.Params{Search: "speaker"})
		require.Len(t, items, 1)
		assert.Equal(t, "p2", items[0].ProductID)
	})

	t.Run("filter by category slug", func(t *testing.T) {
		items := s.Query(query.Params{Category: "home-kitchen"})
		require.Len(t, items, 1)
		assert.Equal(t, "p3", items[0].ProductID)
	})

	t.Run("sort by effective price ascending", func(t *testing.T) {
		items := s.Query(query.Params{SortBy: query.SortPrice, SortOrder: query.OrderAsc})
		require.Len(t, items, 3)
		assert.Equal(t, "p2", items[0].ProductID) // 39.99 on sale
		assert.Equal(t, "p1", items[1].ProductID)
		assert.Equal(t, "p3", items[2].ProductID)
	})

	t.Run("created sort orders by added time", func(t *testing.T) {
		items := s.Query(query.Params{SortBy: query.SortCreated, SortOrder: query.OrderDesc})
		require.Len(t, items, 3)
		assert.Equal(t, "p3", items[0].ProductID)
		assert.Equal(t, "p1", items[2].ProductID)
	})
}
