package store

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishorkishor/storefront-backend/internal/persist"
)

func newTestCart(t *testing.T) (*CartStore, persist.Store) {
	t.Helper()
	backend := persist.NewMemoryStore()
	s, err := NewCartStore(backend)
	require.NoError(t, err)
	return s, backend
}

func TestCartStore_AddNewItem(t *testing.T) {
	s, _ := newTestCart(t)
	pinned := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return pinned })

	require.NoError(t, s.Add(CartCandidate{
		ProductID: "p1", Title: "Headphones", Price: 199.99, Quantity: 2, Image: "p1.jpg",
	}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	// Line item IDs are <productID>-<unix millis>.
	assert.Equal(t, "p1-"+strconv.FormatInt(pinned.UnixMilli(), 10), items[0].ID)
}

func TestCartStore_AddMergesQuantityKeepsPrice(t *testing.T) {
	s, _ := newTestCart(t)

	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Title: "Headphones", Price: 199.99, Quantity: 1}))
	// The product's price dropped between adds; the snapshot from the first
	// add wins.
	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Title: "Headphones", Price: 149.99, Quantity: 2}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 199.99, items[0].Price)
	assert.Equal(t, 599.97, s.Total())
}

func TestCartStore_RemoveIsIdempotent(t *testing.T) {
	s, _ := newTestCart(t)

	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10, Quantity: 1}))
	require.NoError(t, s.Remove("p1"))
	require.NoError(t, s.Remove("p1"))
	require.NoError(t, s.Remove("never-added"))

	assert.Empty(t, s.Items())
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	s, _ := newTestCart(t)
	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10, Quantity: 1}))

	require.NoError(t, s.Update("p1", 5))
	assert.Equal(t, 5, s.Count())

	// Unknown product is a no-op.
	require.NoError(t, s.Update("p2", 3))
	assert.Equal(t, 5, s.Count())
}

func TestCartStore_UpdateToZeroRemoves(t *testing.T) {
	s, _ := newTestCart(t)
	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10, Quantity: 2}))

	require.NoError(t, s.Update("p1", 0))
	assert.Empty(t, s.Items())

	require.NoError(t, s.Add(CartCandidate{ProductID: "p2", Price: 5, Quantity: 1}))
	require.NoError(t, s.Update("p2", -3))
	assert.Empty(t, s.Items())
}

func TestCartStore_CountAndTotal(t *testing.T) {
	s, _ := newTestCart(t)

	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10.50, Quantity: 2}))
	require.NoError(t, s.Add(CartCandidate{ProductID: "p2", Price: 5.25, Quantity: 4}))

	assert.Equal(t, 6, s.Count())
	assert.Equal(t, 42.0, s.Total())
}

func TestCartStore_Clear(t *testing.T) {
	s, _ := newTestCart(t)
	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10, Quantity: 1}))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Total())
}

func TestCartStore_PersistsAcrossRestart(t *testing.T) {
	backend := persist.NewMemoryStore()

	first, err := NewCartStore(backend)
	require.NoError(t, err)
	require.NoError(t, first.Add(CartCandidate{ProductID: "p1", Title: "Headphones", Price: 199.99, Quantity: 2}))

	// A new store over the same backend replays the snapshot.
	second, err := NewCartStore(backend)
	require.NoError(t, err)

	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 199.99, items[0].Price)
}

// flakyStore wraps a working backend and fails writes on demand.
type flakyStore struct {
	inner persist.Store
	fail  bool
}

func (f *flakyStore) Load(v interface{}) error { return f.inner.Load(v) }

func (f *flakyStore) Save(v interface{}) error {
	if f.fail {
		return errors.New("snapshot backend unavailable")
	}
	return f.inner.Save(v)
}

func TestCartStore_FailedSaveLeavesStateUntouched(t *testing.T) {
	backend := &flakyStore{inner: persist.NewMemoryStore()}
	s, err := NewCartStore(backend)
	require.NoError(t, err)
	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Title: "Headphones", Price: 10, Quantity: 1}))

	var counts []int
	s.Subscribe(func(count int) { counts = append(counts, count) })

	backend.fail = true
	require.Error(t, s.Add(CartCandidate{ProductID: "p2", Price: 5, Quantity: 2}))
	require.Error(t, s.Update("p1", 4))
	require.Error(t, s.Remove("p1"))
	require.Error(t, s.Clear())

	// Live reads still match what a snapshot replay would produce.
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)

	replayed, err := NewCartStore(backend.inner)
	require.NoError(t, err)
	assert.Equal(t, items, replayed.Items())

	// Failed mutations never notify.
	assert.Empty(t, counts)
}

func TestCartStore_FailedAddOnEmptyCartStaysEmpty(t *testing.T) {
	backend := &flakyStore{inner: persist.NewMemoryStore(), fail: true}
	s, err := NewCartStore(backend)
	require.NoError(t, err)

	require.Error(t, s.Add(CartCandidate{ProductID: "p1", Title: "Headphones", Price: 10, Quantity: 1}))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())
}

func TestCartStore_NotifiesSubscribers(t *testing.T) {
	s, _ := newTestCart(t)

	var counts []int
	s.Subscribe(func(count int) { counts = append(counts, count) })

	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10, Quantity: 2}))
	require.NoError(t, s.Add(CartCandidate{ProductID: "p2", Price: 5, Quantity: 1}))
	require.NoError(t, s.Remove("p1"))

	assert.Equal(t, []int{2, 3, 1}, counts)
}

func TestCartStore_ItemsReturnsCopy(t *testing.T) {
	s, _ := newTestCart(t)
	require.NoError(t, s.Add(CartCandidate{ProductID: "p1", Price: 10, Quantity: 1}))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}
