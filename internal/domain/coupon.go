package domain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var ErrCouponNotFound = errors.New("coupon not found")

type CouponType string

const (
	CouponGeneral CouponType = "general"
	CouponProduct CouponType = "product"
)

// Coupon is a tagged union: general coupons carry a flat currency Amount,
// product coupons carry the target product reference instead. The two sets
// of fields are never populated together.
type Coupon struct {
	ID   string     `json:"id"`
	Code string     `json:"code"` // stored uppercase
	Type CouponType `json:"type"`

	// general
	Amount float64 `json:"amount,omitempty"`

	// product
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName,omitempty"`

	// Points is the wallet cost to redeem this coupon from the catalog of
	// redeemable rewards. Zero for granted/admin coupons.
	Points int `json:"points,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeCode is applied before every store and compare; coupon codes are
// case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// MatchesLine reports whether a product coupon redeems against the given
// cart line. Two strategies coexist on purpose: the product id embedded in
// the code ("PROD-{id}-...") and target-name equality. A line matches when
// EITHER succeeds, so a renamed product still redeems by id.
func (c Coupon) MatchesLine(l CartLine) bool {
	if c.Type != CouponProduct {
		return false
	}
	if l.ProductID != "" && strings.Contains(NormalizeCode(c.Code), NormalizeCode(fmt.Sprintf("PROD-%s-", l.ProductID))) {
		return true
	}
	return c.ProductName != "" && c.ProductName == l.Name
}

// NewProductCouponCode synthesizes a redeemable code carrying the target
// product id.
func NewProductCouponCode(productID string) string {
	return NormalizeCode(fmt.Sprintf("PROD-%s-%04d", productID, rand.Intn(10000)))
}

// CouponRepository manages the admin-global coupon pool. User-owned coupons
// live inside the user document and are managed through UserRepository.
type CouponRepository interface {
	GetAll(ctx context.Context) ([]Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
}
