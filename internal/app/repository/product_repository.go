package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

// ProductRepository is the local catalog mirror. The in-memory snapshot is
// the hot path; this layer backs it so the server can serve products when
// the upstream catalog is unreachable, and gives the admin surface a place
// to write.
type ProductRepository interface {
	Create(product *model.Product) error
	ReplaceAll(products []model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id string) error
	Count() (int64, error)
	BulkCreate(products []model.Product, batchSize int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"product_id": product.ID,
			"title":      product.Title,
		})
		return err
	}
	return nil
}

// ReplaceAll upserts the full product set in one transaction. Used by the
// catalog refresh to mirror the upstream snapshot.
func (r *productRepository) ReplaceAll(products []model.Product) error {
	logger.Debug("Replacing product mirror", map[string]interface{}{
		"count": len(products),
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(products) == 0 {
			return tx.Where("1 = 1").Delete(&model.Product{}).Error
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&products).Error; err != nil {
			return err
		}

		ids := make([]string, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		return tx.Where("id NOT IN ?", ids).Delete(&model.Product{}).Error
	})
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products from database", err, nil)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id string) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// BulkCreate inserts products in batches. Seed tooling only.
func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return r.db.CreateInBatches(products, batchSize).Error
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
