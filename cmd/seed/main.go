package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kishorkishor/storefront-backend/config"
	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/repository"
	"github.com/kishorkishor/storefront-backend/internal/db"
)

// Seeds the product mirror from an xlsx workbook. The sheet layout matches
// the admin export: ID, SKU, Title, Slug, Price, Sale Price, Stock,
// Category, Status.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheetName)
	}

	var products []model.Product
	for i, row := range rows[1:] {
		product, err := parseProductRow(row)
		if err != nil {
			fmt.Printf("Skipping row %d: %v\n", i+2, err)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func parseProductRow(row []string) (model.Product, error) {
	if len(row) < 5 {
		return model.Product{}, fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}

	id := strings.TrimSpace(cell(row, 0))
	title := strings.TrimSpace(cell(row, 2))
	slug := strings.TrimSpace(cell(row, 3))
	if id == "" || title == "" {
		return model.Product{}, fmt.Errorf("missing id or title")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(cell(row, 4)), 64)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q", cell(row, 4))
	}

	product := model.Product{
		ID:     id,
		SKU:    strings.TrimSpace(cell(row, 1)),
		Title:  title,
		Slug:   slug,
		Price:  price,
		Status: model.ProductStatusPublished,
	}

	if sale := strings.TrimSpace(cell(row, 5)); sale != "" {
		if v, err := strconv.ParseFloat(sale, 64); err == nil {
			product.SalePrice = &v
		}
	}
	if stock := strings.TrimSpace(cell(row, 6)); stock != "" {
		if v, err := strconv.Atoi(stock); err == nil {
			product.Stock = v
		}
	}
	if category := strings.TrimSpace(cell(row, 7)); category != "" {
		product.Category = model.Category{
			ID:   strings.ToLower(strings.ReplaceAll(category, " ", "-")),
			Name: category,
			Slug: strings.ToLower(strings.ReplaceAll(category, " ", "-")),
		}
	}
	if status := strings.TrimSpace(cell(row, 8)); status != "" {
		product.Status = model.ProductStatus(status)
	}

	return product, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
