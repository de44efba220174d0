package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/search"
)

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Refresco de Cola", Category: "Bebidas", Subcategory: "Refrescos", Price: 18},
		{ID: "p2", Name: "Agua Mineral", Category: "Bebidas", Subcategory: "Agua", Price: 12},
		{ID: "p3", Name: "Jabon de Barra", Category: "Limpieza", Price: 25},
		{ID: "p4", Name: "Refresco de Toronja", Category: "Bebidas", Subcategory: "Refrescos", Price: 15},
	}
}

func TestFilterByCategory(t *testing.T) {
	products := fixtureProducts()
	ix := search.New(products, search.DefaultOptions())

	r := Filter(products, ix, Params{Category: "bebidas"})

	require.Len(t, r.Products, 3)
	for _, p := range r.Products {
		assert.Equal(t, "Bebidas", p.Category)
	}
}

func TestFilterByCategoryAndSubcategory(t *testing.T) {
	products := fixtureProducts()
	ix := search.New(products, search.DefaultOptions())

	r := Filter(products, ix, Params{Category: "Bebidas", Subcategory: "refrescos"})

	require.Len(t, r.Products, 2)
	assert.Equal(t, "p1", r.Products[0].ID)
	assert.Equal(t, "p4", r.Products[1].ID)
}

func TestFilterSearchSupersedesTaxonomy(t *testing.T) {
	products := fixtureProducts()
	ix := search.New(products, search.DefaultOptions())

	// An active query routes through the index only; the category filter
	// must not intersect with it.
	r := Filter(products, ix, Params{Query: "jabon", Category: "Bebidas"})

	require.Len(t, r.Products, 1)
	assert.Equal(t, "p3", r.Products[0].ID)
}

func TestFilterSortAscending(t *testing.T) {
	products := fixtureProducts()
	ix := search.New(products, search.DefaultOptions())

	r := Filter(products, ix, Params{Category: "Bebidas", Sort: SortPriceAsc})

	require.Len(t, r.Products, 3)
	assert.Equal(t, []string{"p2", "p4", "p1"}, idsOf(r.Products))
}

func TestFilterSortDescending(t *testing.T) {
	products := fixtureProducts()
	ix := search.New(products, search.DefaultOptions())

	r := Filter(products, ix, Params{Sort: SortPriceDesc})

	assert.Equal(t, []string{"p3", "p1", "p4", "p2"}, idsOf(r.Products))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	ix := search.New(products, search.DefaultOptions())

	Filter(products, ix, Params{Sort: SortPriceAsc})

	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, idsOf(products))
}

func TestSortOrderCycle(t *testing.T) {
	assert.Equal(t, SortPriceAsc, SortNone.Next())
	assert.Equal(t, SortPriceDesc, SortPriceAsc.Next())
	assert.Equal(t, SortNone, SortPriceDesc.Next())
}

func idsOf(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
