package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/app/repository"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CatalogService serves the product catalog from an in-memory snapshot.
// Refresh pulls the upstream API and mirrors it into the local database;
// when the upstream is down the snapshot is rebuilt from the mirror, so
// reads keep working on the last known catalog.
type CatalogService interface {
	Refresh(ctx context.Context) error
	List(params query.Params) query.Result
	ListAll() []model.Product
	Get(id string) (*model.Product, error)
	GetBySlug(slug string) (*model.Product, error)
	Create(product *model.Product) error
	Update(product *model.Product) error
	Delete(id string) error
}

type catalogService struct {
	source repository.CatalogSource
	repo   repository.ProductRepository

	mu       sync.RWMutex
	products []model.Product
}

func NewCatalogService(source repository.CatalogSource, repo repository.ProductRepository) CatalogService {
	return &catalogService{source: source, repo: repo}
}

// Refresh replaces the snapshot with the upstream catalog. Upstream failures
// fall back to the database mirror; only when both paths fail does the
// previous snapshot stay and the error propagate.
func (s *catalogService) Refresh(ctx context.Context) error {
	products, err := s.source.FetchAll(ctx)
	if err != nil {
		logger.Warn("Upstream catalog fetch failed, falling back to mirror", map[string]interface{}{
			"error": err.Error(),
		})

		mirrored, repoErr := s.repo.FindAll()
		if repoErr != nil {
			logger.Error("Catalog mirror read failed", repoErr, nil)
			return err
		}
		s.setSnapshot(mirrored)
		return nil
	}

	if err := s.repo.ReplaceAll(products); err != nil {
		// A stale mirror is tolerable; the snapshot is still fresh.
		logger.Error("Failed to mirror catalog to database", err, map[string]interface{}{
			"products": len(products),
		})
	}

	s.setSnapshot(products)
	logger.Info("Catalog snapshot refreshed", map[string]interface{}{
		"products": len(products),
	})
	return nil
}

func (s *catalogService) setSnapshot(products []model.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// List filters, sorts and paginates the published catalog.
func (s *catalogService) List(params query.Params) query.Result {
	return query.Apply(s.published(), params)
}

// ListAll returns every product regardless of status. Admin surface only.
func (s *catalogService) ListAll() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, len(s.products))
	copy(products, s.products)
	return products
}

func (s *catalogService) published() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Status == "" || p.Status == model.ProductStatusPublished {
			products = append(products, p)
		}
	}
	return products
}

// Get resolves a product by ID, checking the snapshot first and the
// database mirror second.
func (s *catalogService) Get(id string) (*model.Product, error) {
	s.mu.RLock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			s.mu.RUnlock()
			return &p, nil
		}
	}
	s.mu.RUnlock()

	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetBySlug resolves a product by its URL slug.
func (s *catalogService) GetBySlug(slug string) (*model.Product, error) {
	slug = strings.ToLower(slug)

	s.mu.RLock()
	for i := range s.products {
		if strings.ToLower(s.products[i].Slug) == slug {
			p := s.products[i]
			s.mu.RUnlock()
			return &p, nil
		}
	}
	s.mu.RUnlock()

	product, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create writes a product to the mirror and the snapshot.
func (s *catalogService) Create(product *model.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}

	s.mu.Lock()
	s.products = append(s.products, *product)
	s.mu.Unlock()

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return nil
}

// Update writes a product to the mirror and patches the snapshot in place.
func (s *catalogService) Update(product *model.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = *product
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes a product from the mirror and the snapshot.
func (s *catalogService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
	return nil
}
