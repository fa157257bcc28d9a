package repository

import (
	"context"
	"fmt"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/pkg/apiclient"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

// CatalogSource fetches the product catalog from the remote commerce API.
type CatalogSource interface {
	FetchAll(ctx context.Context) ([]model.Product, error)
	FetchByID(ctx context.Context, id string) (*model.Product, error)
}

// upstreamPage is the envelope the commerce API wraps list responses in.
type upstreamPage struct {
	Data       []model.Product `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

type upstreamItem struct {
	Data model.Product `json:"data"`
}

type upstreamCatalog struct {
	client   *apiclient.Client
	pageSize int
}

func NewUpstreamCatalog(client *apiclient.Client, pageSize int) CatalogSource {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &upstreamCatalog{client: client, pageSize: pageSize}
}

// FetchAll pages through the upstream catalog until the last page.
func (u *upstreamCatalog) FetchAll(ctx context.Context) ([]model.Product, error) {
	var all []model.Product
	for page := 1; ; page++ {
		var resp upstreamPage
		path := fmt.Sprintf("/products?page=%d&limit=%d", page, u.pageSize)
		if err := u.client.Get(ctx, path, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
		}

		all = append(all, resp.Data...)
		if page >= resp.Pagination.TotalPages || len(resp.Data) == 0 {
			break
		}
	}

	logger.Debug("Fetched upstream catalog", map[string]interface{}{
		"products": len(all),
	})
	return all, nil
}

func (u *upstreamCatalog) FetchByID(ctx context.Context, id string) (*model.Product, error) {
	var resp upstreamItem
	if err := u.client.Get(ctx, "/products/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
