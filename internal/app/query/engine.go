// Package query implements the product list query semantics: conjunctive
// filtering, stable sorting and 1-based pagination over an in-memory product
// collection. All functions are pure; they never mutate their input slice.
package query

import (
	"sort"
	"strings"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
)

type SortKey string

const (
	SortName    SortKey = "name"
	SortPrice   SortKey = "price"
	SortRating  SortKey = "rating"
	SortCreated SortKey = "created"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Pagination mirrors the wire shape of the product list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is one page of products plus pagination metadata.
type Result struct {
	Data       []model.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// Filter returns the subset of products matching every active predicate in
// params. Inactive predicates (empty search, nil bounds, empty category and
// tag set) match everything. The input order is preserved.
func Filter(products []model.Product, params Params) []model.Product {
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matches(p, params) {
			result = append(result, p)
		}
	}
	return result
}

func matches(p model.Product, params Params) bool {
	if params.Search != "" && !matchesSearch(p, params.Search) {
		return false
	}
	if params.MinPrice != nil && p.EffectivePrice() < *params.MinPrice {
		return false
	}
	if params.MaxPrice != nil && p.EffectivePrice() > *params.MaxPrice {
		return false
	}
	if params.InStock != nil {
		if *params.InStock && p.Stock <= 0 {
			return false
		}
		if !*params.InStock && p.Stock != 0 {
			return false
		}
	}
	if params.Category != "" && p.Category.ID != params.Category && p.Category.Slug != params.Category {
		return false
	}
	if len(params.Tags) > 0 && !matchesTags(p, params.Tags) {
		return false
	}
	return true
}

func matchesSearch(p model.Product, term string) bool {
	q := strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesTags(p model.Product, wanted []string) bool {
	set := make(map[string]struct{}, len(wanted))
	for _, t := range wanted {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	for _, tag := range p.Tags {
		if _, ok := set[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of products. The sort is stable: products that
// compare equal keep their relative input order. Unknown keys fall back to
// the name key.
func Sort(products []model.Product, key SortKey, order SortOrder) []model.Product {
	result := make([]model.Product, len(products))
	copy(result, products)

	cmp := comparator(key)
	sort.SliceStable(result, func(i, j int) bool {
		c := cmp(result[i], result[j])
		if order == OrderDesc {
			return c > 0
		}
		return c < 0
	})
	return result
}

func comparator(key SortKey) func(a, b model.Product) int {
	switch key {
	case SortPrice:
		return func(a, b model.Product) int {
			return compareFloat(a.EffectivePrice(), b.EffectivePrice())
		}
	case SortRating:
		return func(a, b model.Product) int {
			return compareFloat(a.AverageRating, b.AverageRating)
		}
	case SortCreated:
		return func(a, b model.Product) int {
			// Missing timestamps sort as the zero time.
			if a.CreatedAt.Equal(b.CreatedAt) {
				return 0
			}
			if a.CreatedAt.Before(b.CreatedAt) {
				return -1
			}
			return 1
		}
	default:
		return func(a, b model.Product) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Paginate slices out the requested 1-based page. A page past the end yields
// an empty (non-nil) slice; total pages is ceil(total/limit).
func Paginate(products []model.Product, page, limit int) ([]model.Product, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total := len(products)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start >= total {
		return []model.Product{}, Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageSlice := make([]model.Product, end-start)
	copy(pageSlice, products[start:end])
	return pageSlice, Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Apply runs filter, sort and pagination in order and packages the page with
// its metadata.
func Apply(products []model.Product, params Params) Result {
	filtered := Filter(products, params)
	sorted := Sort(filtered, params.SortBy, params.SortOrder)
	data, pagination := Paginate(sorted, params.Page, params.Limit)
	return Result{Data: data, Pagination: pagination}
}
