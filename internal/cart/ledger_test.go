package cart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrotes-backend/internal/domain"
)

var (
	cola = domain.Product{ID: "p1", Name: "Refresco de Cola", Category: "bebidas", Price: 18, BonusPoints: 2}
	pan  = domain.Product{ID: "p2", Name: "Pan Blanco", Category: "panaderia", Price: 42}
)

func carneProduct() domain.Product {
	avg := 0.5
	return domain.Product{ID: "p3", Name: "Bistec de Res", Category: "carnes y embutidos", Price: 180, AverageWeight: &avg}
}

func TestAddSimpleMergesSameProduct(t *testing.T) {
	l := NewLedger(nil)

	require.NoError(t, l.AddSimple(cola, 2))
	require.NoError(t, l.AddSimple(pan, 1))
	require.NoError(t, l.AddSimple(cola, 3))

	require.Len(t, l.Lines(), 2)
	assert.Equal(t, 5, l.Lines()[0].Quantity)
	assert.Equal(t, 1, l.Lines()[1].Quantity)
}

func TestAddSimpleSnapshotsPrice(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.AddSimple(cola, 1))

	// A later catalog price change must not reach the line already in the
	// cart.
	changed := cola
	changed.Price = 25
	require.NoError(t, l.AddSimple(changed, 1))

	require.Len(t, l.Lines(), 1)
	assert.Equal(t, 18.0, l.Lines()[0].UnitPrice)
	assert.Equal(t, 36.0, l.Total())
}

func TestAddSimpleRefusesWeightSoldProduct(t *testing.T) {
	l := NewLedger(nil)

	err := l.AddSimple(carneProduct(), 1)

	assert.ErrorIs(t, err, domain.ErrRequiresWeightSelection)
	assert.Empty(t, l.Lines())
}

func TestAddBulkAlwaysAppends(t *testing.T) {
	l := NewLedger(nil)
	p := carneProduct()

	l.AddBulk(p, 0.5, 90, "sin grasa")
	l.AddBulk(p, 1.0, 180, "")

	require.Len(t, l.Lines(), 2)
	first, second := l.Lines()[0], l.Lines()[1]
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, strings.HasPrefix(first.ID, p.ID+"-"))
	assert.Equal(t, "sin grasa", first.Note)
	require.NotNil(t, first.Weight)
	assert.Equal(t, 0.5, *first.Weight)
	assert.Equal(t, 270.0, l.Total())
}

func TestAddComboFixedPrice(t *testing.T) {
	l := NewLedger(nil)
	combo := domain.Combo{
		ID:         "c1",
		Name:       "Desayuno",
		TotalPrice: 99,
		Items:      []domain.ComboItem{{Name: "Huevos", Quantity: 12}, {Name: "Pan", Quantity: 1}},
	}

	l.AddCombo(combo)

	require.Len(t, l.Lines(), 1)
	line := l.Lines()[0]
	assert.Equal(t, domain.LineCombo, line.Kind)
	assert.Equal(t, 99.0, line.Contribution())
	assert.Len(t, line.Items, 2)
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.AddSimple(cola, 2))

	require.NoError(t, l.UpdateQuantity(0, -10))

	assert.Equal(t, 1, l.Lines()[0].Quantity)
	require.Len(t, l.Lines(), 1)
}

func TestUpdateQuantityRejectsFixedLines(t *testing.T) {
	l := NewLedger(nil)
	l.AddBulk(carneProduct(), 0.5, 90, "")

	err := l.UpdateQuantity(0, 1)

	assert.Error(t, err)
	assert.Equal(t, 1, l.Lines()[0].Quantity)
}

func TestRemoveByIndex(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.AddSimple(cola, 1))
	require.NoError(t, l.AddSimple(pan, 1))

	require.NoError(t, l.Remove(0))

	require.Len(t, l.Lines(), 1)
	assert.Equal(t, pan.ID, l.Lines()[0].ProductID)

	assert.ErrorIs(t, l.Remove(5), domain.ErrLineNotFound)
	assert.ErrorIs(t, l.Remove(-1), domain.ErrLineNotFound)
}

func TestTotalMixesLineKinds(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.AddSimple(cola, 3)) // 54
	l.AddBulk(carneProduct(), 0.5, 90, "")   // 90
	l.AddCombo(domain.Combo{ID: "c1", Name: "Desayuno", TotalPrice: 99})

	assert.Equal(t, 243.0, l.Total())
}

func TestTotalRoundsToCents(t *testing.T) {
	l := NewLedger([]domain.CartLine{
		{Kind: domain.LineSimple, ProductID: "x", UnitPrice: 0.1, Quantity: 3},
		{Kind: domain.LineSimple, ProductID: "y", UnitPrice: 0.2, Quantity: 1},
	})

	assert.Equal(t, 0.5, l.Total())
}

func TestCountBadge(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.AddSimple(cola, 4))
	l.AddBulk(carneProduct(), 0.5, 90, "")
	l.AddCombo(domain.Combo{ID: "c1", TotalPrice: 99})

	assert.Equal(t, 6, l.Count())
}
