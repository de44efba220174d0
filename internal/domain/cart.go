package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrLineNotFound            = errors.New("cart line not found")
	ErrRequiresWeightSelection = errors.New("product is sold by weight, select a weight first")
)

type LineKind string

const (
	LineSimple LineKind = "simple"
	LineBulk   LineKind = "bulk"
	LineCombo  LineKind = "combo"
)

// ComboItem is embedded in a combo line for display only; it never
// participates in pricing.
type ComboItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CartLine is one entry of the cart ledger. Prices are snapshotted at
// add-time and never re-read from the live catalog afterward, so an in-cart
// price change cannot corrupt an in-progress order.
//
// Simple lines price as UnitPrice*Quantity; bulk and combo lines carry a
// fixed TotalPrice.
type CartLine struct {
	ID        string   `json:"id"`
	Kind      LineKind `json:"kind"`
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Image     string   `json:"image,omitempty"`

	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`

	TotalPrice float64  `json:"totalPrice,omitempty"`
	Weight     *float64 `json:"weight,omitempty"` // kg, bulk selections
	Note       string   `json:"note,omitempty"`

	Items []ComboItem `json:"items,omitempty"`

	// BonusPoints snapshots the product's loyalty accrual override.
	BonusPoints int `json:"bonusPoints,omitempty"`
}

// Contribution is THE cart total predicate. Every call site that sums a
// cart (display, checkout, loyalty earn) must go through it.
func (l CartLine) Contribution() float64 {
	if l.Kind == LineBulk || l.Kind == LineCombo {
		return l.TotalPrice
	}
	return l.UnitPrice * float64(l.Quantity)
}

// Combo is an admin-assembled bundle sold at a fixed price. Its items are
// carried into the cart line for display only.
type Combo struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	TotalPrice float64     `json:"totalPrice"`
	Items      []ComboItem `json:"items"`
	Image      string      `json:"image,omitempty"`
}

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Clone deep-copies the cart so order assembly never shares mutable
// references with the live ledger.
func (c Cart) Clone() Cart {
	out := c
	out.Lines = make([]CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	for i, l := range c.Lines {
		if l.Weight != nil {
			w := *l.Weight
			out.Lines[i].Weight = &w
		}
		if len(l.Items) > 0 {
			items := make([]ComboItem, len(l.Items))
			copy(items, l.Items)
			out.Lines[i].Items = items
		}
	}
	return out
}

type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Clear(ctx context.Context, userID string) error
}
