package catalog

import (
	"sort"
	"strings"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/search"
)

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// Next cycles the three-state price sort toggle.
func (s SortOrder) Next() SortOrder {
	switch s {
	case SortNone:
		return SortPriceAsc
	case SortPriceAsc:
		return SortPriceDesc
	default:
		return SortNone
	}
}

type Params struct {
	Query       string
	Category    string
	Subcategory string
	Sort        SortOrder
}

// Result of a pipeline run. Suggestions is only populated when a free-text
// search found nothing at the primary threshold.
type Result struct {
	Products    []domain.Product
	Suggestions []domain.Product
}

// Filter composes search, taxonomy filtering and price sort. A non-empty
// query routes through the fuzzy index exclusively; search supersedes the
// category/subcategory filters rather than combining with them. The input
// slice is never mutated.
func Filter(products []domain.Product, index *search.Index, p Params) Result {
	var out Result
	if strings.TrimSpace(p.Query) != "" {
		r := index.Search(p.Query)
		out.Products = r.Products
		out.Suggestions = r.Suggestions
	} else {
		out.Products = byTaxonomy(products, p.Category, p.Subcategory)
	}
	out.Products = sortByPrice(out.Products, p.Sort)
	return out
}

func byTaxonomy(products []domain.Product, category, subcategory string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	cat := domain.NormalizeCategory(category)
	sub := domain.NormalizeCategory(subcategory)
	for _, p := range products {
		if cat != "" && domain.NormalizeCategory(p.Category) != cat {
			continue
		}
		if sub != "" && domain.NormalizeCategory(p.Subcategory) != sub {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortByPrice is stable and copies before sorting so callers can hold on to
// the unsorted view.
func sortByPrice(products []domain.Product, order SortOrder) []domain.Product {
	if order == SortNone {
		return products
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortPriceAsc {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}
