package domain

import (
	"context"
	"strings"
	"time"
)

// Product is read-only to the pricing core; admins own its lifecycle.
// Stock == nil means unlimited stock.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Stock         *int     `json:"stock"`
	IsBulk        bool     `json:"isBulk"`
	AverageWeight *float64 `json:"averageWeight"` // kg per unit
	BonusPoints   int      `json:"bonusPoints"`   // loyalty accrual override
	Barcode       string   `json:"barcode"`
	Image         string   `json:"image"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasDiscount reports whether originalPrice registers as a strikethrough
// discount. An originalPrice below the current price is ignored.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice >= p.Price
}

// SoldByWeight reports whether the product must go through the
// weight-selection flow instead of a plain add-to-cart.
func (p Product) SoldByWeight() bool {
	return p.IsBulk || p.AverageWeight != nil || NormalizeCategory(p.Category) == WeightSoldCategory
}

// WeightSoldCategory is the taxonomy bucket whose members are always priced
// by selected weight, regardless of per-product flags.
const WeightSoldCategory = "carnes y embutidos"

// NormalizeCategory collapses the name-vs-id ambiguity of category
// identifiers into one comparable form.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type ProductRepository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
