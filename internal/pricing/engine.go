// Package pricing implements the discount resolution engine: it folds the
// user's product coupons, a points redemption and one general coupon into a
// single idempotent order total. All discounts are additive off the same
// base subtotal; they never compound.
package pricing

import (
	"github.com/shopspring/decimal"

	"abarrotes-backend/internal/cart"
	"abarrotes-backend/internal/domain"
)

// Resolution is the engine's verdict over one cart snapshot.
type Resolution struct {
	Subtotal              float64         `json:"subtotal"`
	ProductCouponDiscount float64         `json:"productCouponDiscount"`
	UsedProductCoupons    []domain.Coupon `json:"usedProductCoupons"`
	PointsUsed            int             `json:"pointsUsed"`
	PointsDiscount        float64         `json:"pointsDiscount"`
	GeneralCouponDiscount float64         `json:"generalCouponDiscount"`
	FinalTotal            float64         `json:"finalTotal"`
}

// Resolve computes the payable total for a cart snapshot, in fixed order:
// product coupons, points, general coupon, zero floor.
//
// The engine does not clamp pointsToRedeem against the wallet; that is the
// caller's precondition. Settlement still floors the wallet defensively.
func Resolve(lines []domain.CartLine, user domain.User, pointsToRedeem int, general *domain.Coupon, settings domain.Settings) Resolution {
	res := Resolution{
		Subtotal:   cart.Total(lines),
		PointsUsed: pointsToRedeem,
	}

	// 1. Product-coupon matching, in line-iteration order; with scarce
	// coupons the first matching line wins.
	productDiscount := decimal.Zero
	consumed := make([]bool, len(user.Coupons))
	for _, line := range lines {
		matched := 0
		for i := range user.Coupons {
			if matched >= line.Quantity {
				break
			}
			if consumed[i] || !user.Coupons[i].MatchesLine(line) {
				continue
			}
			consumed[i] = true
			res.UsedProductCoupons = append(res.UsedProductCoupons, user.Coupons[i])
			matched++
		}
		if matched > 0 {
			productDiscount = productDiscount.Add(
				decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(matched))))
		}
	}
	res.ProductCouponDiscount, _ = productDiscount.Round(2).Float64()

	// 2. Points redemption.
	pointsDiscount := decimal.NewFromInt(int64(pointsToRedeem)).
		Mul(decimal.NewFromFloat(settings.PointValue))
	res.PointsDiscount, _ = pointsDiscount.Round(2).Float64()

	// 3. General coupon. A product-typed coupon sitting in the general slot
	// contributes nothing here; step 1 already owns product coupons.
	generalDiscount := decimal.Zero
	if general != nil && general.Type == domain.CouponGeneral {
		generalDiscount = decimal.NewFromFloat(general.Amount)
	}
	res.GeneralCouponDiscount, _ = generalDiscount.Round(2).Float64()

	// 4. Zero-floored final total.
	total := decimal.NewFromFloat(res.Subtotal).
		Sub(pointsDiscount).
		Sub(generalDiscount).
		Sub(productDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	res.FinalTotal, _ = total.Round(2).Float64()
	return res
}
