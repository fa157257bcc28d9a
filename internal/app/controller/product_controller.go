package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/app/service"
	apperrors "github.com/kishorkishor/storefront-backend/internal/errors"
	"github.com/kishorkishor/storefront-backend/internal/middleware"
)

type ProductController struct {
	catalog service.CatalogService
}

func NewProductController(catalog service.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// ListProducts returns the filtered, sorted, paginated catalog.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params := query.ParseParams(c.Request.URL.Query())
	result := ctrl.catalog.List(params)

	log.Debug("Products listed", map[string]interface{}{
		"total": result.Pagination.Total,
		"page":  result.Pagination.Page,
	})
	respondPage(c, result)
}

// GetProduct returns a product by ID.
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	product, err := ctrl.catalog.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	respondOK(c, product)
}

// GetProductBySlug returns a product by its URL slug.
// GET /api/v1/products/slug/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	product, err := ctrl.catalog.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product by slug", err, map[string]interface{}{
			"slug": slug,
		})
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	respondOK(c, product)
}

type ProductRequest struct {
	ID               string              `json:"id" binding:"required"`
	SKU              string              `json:"sku"`
	Title            string              `json:"title" binding:"required"`
	Slug             string              `json:"slug" binding:"required"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description"`
	Price            float64             `json:"price" binding:"required,gt=0"`
	SalePrice        *float64            `json:"sale_price"`
	Stock            int                 `json:"stock" binding:"gte=0"`
	Images           []model.ProductImage `json:"images"`
	Tags             []string            `json:"tags"`
	Category         model.Category      `json:"category"`
	Status           model.ProductStatus `json:"status"`
	Featured         bool                `json:"featured"`
}

// CreateProduct creates a catalog entry. Admin surface.
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if req.SalePrice != nil && *req.SalePrice >= req.Price {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Sale price must be below the regular price")
		return
	}

	product := productFromRequest(req)
	if err := ctrl.catalog.Create(&product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"product_id": req.ID,
		})
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	respondCreated(c, product)
}

// UpdateProduct replaces a catalog entry. Admin surface.
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if _, err := ctrl.catalog.Get(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}
	req.ID = id

	product := productFromRequest(req)
	if err := ctrl.catalog.Update(&product); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	respondOKWithMessage(c, product, "Product updated")
}

// DeleteProduct removes a catalog entry. Admin surface.
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if err := ctrl.catalog.Delete(id); err != nil {
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	respondOKWithMessage(c, gin.H{"id": id}, "Product deleted")
}

// ListAllProducts returns every product including drafts. Admin surface.
// GET /api/v1/admin/products
func (ctrl *ProductController) ListAllProducts(c *gin.Context) {
	products := ctrl.catalog.ListAll()
	respondOK(c, products)
}

// ExportProducts streams the catalog as an xlsx workbook. Admin surface.
// GET /api/v1/admin/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products := ctrl.catalog.ListAll()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "SKU", "Title", "Slug", "Price", "Sale Price", "Stock", "Category", "Status", "Rating", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range products {
		values := []interface{}{
			p.ID, p.SKU, p.Title, p.Slug, p.Price,
			salePriceCell(p.SalePrice), p.Stock,
			p.Category.Name, string(p.Status), p.AverageRating,
			p.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write product export", err, nil)
		c.Status(http.StatusInternalServerError)
		return
	}

	log.Info("Product export generated", map[string]interface{}{
		"products": len(products),
		"filename": filename,
	})
}

func salePriceCell(sale *float64) interface{} {
	if sale == nil {
		return ""
	}
	return *sale
}

func productFromRequest(req ProductRequest) model.Product {
	return model.Product{
		ID:               req.ID,
		SKU:              req.SKU,
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		SalePrice:        req.SalePrice,
		Stock:            req.Stock,
		Images:           req.Images,
		Tags:             req.Tags,
		Category:         req.Category,
		Status:           req.Status,
		Featured:         req.Featured,
	}
}
