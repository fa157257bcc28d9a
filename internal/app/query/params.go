package query

import (
	"net/url"
	"strconv"
	"strings"
)

const DefaultLimit = 20

// Params is one parsed product list query. Nil pointer fields mean the
// predicate is inactive.
type Params struct {
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	InStock   *bool
	Category  string
	Tags      []string
	SortBy    SortKey
	SortOrder SortOrder
	Page      int
	Limit     int
}

// ParseParams reads the query surface accepted by the product list endpoint:
// q/search, min_price, max_price, in_stock, category, tags (comma-separated),
// sort_by, sort_order, page, limit. Unparsable numeric bounds are dropped
// rather than rejected; page and limit are clamped to >= 1.
func ParseParams(values url.Values) Params {
	p := Params{
		SortBy:    SortName,
		SortOrder: OrderAsc,
		Page:      1,
		Limit:     DefaultLimit,
	}

	p.Search = values.Get("q")
	if p.Search == "" {
		p.Search = values.Get("search")
	}

	p.MinPrice = parsePrice(values.Get("min_price"))
	p.MaxPrice = parsePrice(values.Get("max_price"))

	if raw := values.Get("in_stock"); raw != "" {
		want := raw == "true" || raw == "1"
		p.InStock = &want
	}

	p.Category = values.Get("category")

	if raw := values.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				p.Tags = append(p.Tags, t)
			}
		}
	}

	switch SortKey(values.Get("sort_by")) {
	case SortPrice:
		p.SortBy = SortPrice
	case SortRating:
		p.SortBy = SortRating
	case SortCreated:
		p.SortBy = SortCreated
	}
	if SortOrder(values.Get("sort_order")) == OrderDesc {
		p.SortOrder = OrderDesc
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= 1 {
		p.Limit = limit
	}

	return p
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
