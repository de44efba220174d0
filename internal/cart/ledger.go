package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"abarrotes-backend/internal/domain"
)

// Ledger is the ordered list of cart lines with the add/merge/remove
// semantics of the storefront cart. It owns no storage; callers load and
// persist the underlying lines.
type Ledger struct {
	lines []domain.CartLine
}

func NewLedger(lines []domain.CartLine) *Ledger {
	return &Ledger{lines: lines}
}

// Lines exposes the backing slice for persistence and pricing.
func (l *Ledger) Lines() []domain.CartLine { return l.lines }

// AddSimple merges into an existing non-bulk line for the same product, or
// appends a new line with the price snapshotted from the product at
// add-time. Weight-sold products are refused: they must go through the
// weight-selection flow and arrive via AddBulk.
func (l *Ledger) AddSimple(p domain.Product, qty int) error {
	if p.SoldByWeight() {
		return domain.ErrRequiresWeightSelection
	}
	if qty < 1 {
		qty = 1
	}
	for i := range l.lines {
		if l.lines[i].Kind == domain.LineSimple && l.lines[i].ProductID == p.ID {
			l.lines[i].Quantity += qty
			return nil
		}
	}
	l.lines = append(l.lines, domain.CartLine{
		ID:          p.ID,
		Kind:        domain.LineSimple,
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Image:       p.Image,
		UnitPrice:   p.Price,
		Quantity:    qty,
		BonusPoints: p.BonusPoints,
	})
	return nil
}

// AddBulk always appends a distinct line with a synthesized id, so several
// weight selections of the same product coexist.
func (l *Ledger) AddBulk(p domain.Product, weight, totalPrice float64, note string) {
	w := weight
	l.lines = append(l.lines, domain.CartLine{
		ID:          synthesizeID(p.ID),
		Kind:        domain.LineBulk,
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Image:       p.Image,
		UnitPrice:   p.Price,
		Quantity:    1,
		TotalPrice:  totalPrice,
		Weight:      &w,
		Note:        note,
		BonusPoints: p.BonusPoints,
	})
}

// AddCombo appends the bundle as a fixed-price line; sub-items ride along
// for display only.
func (l *Ledger) AddCombo(c domain.Combo) {
	items := make([]domain.ComboItem, len(c.Items))
	copy(items, c.Items)
	l.lines = append(l.lines, domain.CartLine{
		ID:         synthesizeID(c.ID),
		Kind:       domain.LineCombo,
		ProductID:  c.ID,
		Name:       c.Name,
		Image:      c.Image,
		Quantity:   1,
		TotalPrice: c.TotalPrice,
		Items:      items,
	})
}

// Remove drops the line at index. Removing is always explicit; quantity
// updates never remove.
func (l *Ledger) Remove(index int) error {
	if index < 0 || index >= len(l.lines) {
		return domain.ErrLineNotFound
	}
	l.lines = append(l.lines[:index], l.lines[index+1:]...)
	return nil
}

// UpdateQuantity applies a delta to a simple line, flooring at 1.
func (l *Ledger) UpdateQuantity(index, delta int) error {
	if index < 0 || index >= len(l.lines) {
		return domain.ErrLineNotFound
	}
	line := &l.lines[index]
	if line.Kind != domain.LineSimple {
		return fmt.Errorf("quantity is fixed for %s lines", line.Kind)
	}
	line.Quantity += delta
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	return nil
}

// Total sums line contributions through the single shared predicate.
// Accumulation is decimal so repeated cents never drift.
func (l *Ledger) Total() float64 {
	return Total(l.lines)
}

// Total is the one cart-total implementation; display, checkout and the
// loyalty earn calculation all call it.
func Total(lines []domain.CartLine) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(decimal.NewFromFloat(line.Contribution()))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// Count is the badge count: simple quantities plus one per fixed line.
func (l *Ledger) Count() int {
	n := 0
	for _, line := range l.lines {
		if line.Kind == domain.LineSimple {
			n += line.Quantity
		} else {
			n++
		}
	}
	return n
}

func synthesizeID(originalID string) string {
	return fmt.Sprintf("%s-%d", originalID, time.Now().UnixNano())
}
