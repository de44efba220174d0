package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"abarrotes-backend/internal/domain"
)

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Refresco de Cola 600ml", Category: "bebidas", Brand: "Cola Loca"},
		{ID: "p2", Name: "Refresco de Naranja", Category: "bebidas"},
		{ID: "p3", Name: "Huevo Blanco 12pz", Category: "abarrotes"},
		{ID: "p4", Name: "Tomate Saladet", Category: "frutas y verduras"},
		{ID: "p5", Name: "Detergente en Polvo", Category: "limpieza", Description: "aroma floral"},
	}
}

func TestSearchExactName(t *testing.T) {
	ix := New(sampleCatalog(), DefaultOptions())

	r := ix.Search("refresco de cola")

	assert.NotEmpty(t, r.Products)
	assert.Equal(t, "p1", r.Products[0].ID)
	assert.Empty(t, r.Suggestions)
}

func TestSearchBlankQueryYieldsNothing(t *testing.T) {
	ix := New(sampleCatalog(), DefaultOptions())

	r := ix.Search("   ")

	assert.Empty(t, r.Products)
	assert.Empty(t, r.Suggestions)
}

func TestSearchSynonymRewrite(t *testing.T) {
	ix := New(sampleCatalog(), DefaultOptions())

	// "chesco" is regional slang that appears nowhere in the catalog; the
	// synonym table must rewrite it before scoring.
	r := ix.Search("chesco")

	assert.NotEmpty(t, r.Products)
	ids := make([]string, 0, len(r.Products))
	for _, p := range r.Products {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "p1")
	assert.Contains(t, ids, "p2")
}

func TestSearchTypoStillMatches(t *testing.T) {
	ix := New(sampleCatalog(), DefaultOptions())

	r := ix.Search("refersco")

	assert.NotEmpty(t, r.Products)
	assert.Equal(t, "bebidas", r.Products[0].Category)
}

func TestSearchSuggestionsOnNearMiss(t *testing.T) {
	ix := New(sampleCatalog(), DefaultOptions())

	// Too garbled for the primary threshold, close enough for the looser
	// suggestion pass. The two channels must not merge.
	r := ix.Search("dtrgnt")

	assert.Empty(t, r.Products)
	assert.NotEmpty(t, r.Suggestions)
	assert.Equal(t, "p5", r.Suggestions[0].ID)
	assert.LessOrEqual(t, len(r.Suggestions), DefaultOptions().MaxSuggestions)
}

func TestSearchNoResemblance(t *testing.T) {
	ix := New(sampleCatalog(), DefaultOptions())

	r := ix.Search("xylophone quantum")

	assert.Empty(t, r.Products)
	assert.Empty(t, r.Suggestions)
}

func TestSynonymNormalizePhraseBeatsTokens(t *testing.T) {
	table := SynonymTable{
		"pan de caja": "pan blanco",
		"pan":         "tortilla",
	}

	assert.Equal(t, "pan blanco", table.Normalize("Pan de Caja"))
	assert.Equal(t, "tortilla dulce", table.Normalize("pan dulce"))
}

func TestSynonymNormalizeUntouchedQuery(t *testing.T) {
	table := DefaultSynonyms()

	assert.Equal(t, "leche entera", table.Normalize("  Leche Entera "))
	assert.Equal(t, "", table.Normalize(""))
}
