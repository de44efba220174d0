// Package loyalty settles a confirmed order against the user's loyalty
// state: points earned, points spent, coupons consumed.
package loyalty

import (
	"github.com/shopspring/decimal"

	"abarrotes-backend/internal/domain"
)

// Settle is a pure function over (order, user): it returns the user's next
// loyalty state and never touches storage. The caller persists the result
// as one merged write so a half-applied mutation can never be observed.
//
// usedProductCoupons is the consumed set captured by the resolution engine.
func Settle(order domain.Order, user domain.User, usedProductCoupons []domain.Coupon, settings domain.Settings) domain.User {
	out := user

	// Earn. Accumulate in decimal and round only once at the wallet write;
	// per-line rounding would drift against the displayed balance.
	earned := decimal.Zero
	pct := decimal.NewFromFloat(settings.PointsPercentage).Div(decimal.NewFromInt(100))
	for _, line := range order.Lines {
		if line.BonusPoints > 0 {
			earned = earned.Add(decimal.NewFromInt(int64(line.BonusPoints * line.Quantity)))
			continue
		}
		earned = earned.Add(decimal.NewFromFloat(line.Contribution()).Mul(pct))
	}

	wallet := decimal.NewFromFloat(user.Wallet).
		Sub(decimal.NewFromInt(int64(order.PointsUsed))).
		Add(earned)
	// Defensive floor: the caller should never redeem past the balance, but
	// the wallet invariant holds regardless.
	if wallet.IsNegative() {
		wallet = decimal.Zero
	}
	out.Wallet, _ = wallet.Round(2).Float64()

	// Consume: the applied general coupon plus every product-coupon
	// instance from the consumed set. Id match preferred; codes are not
	// guaranteed unique across pools.
	remove := make(map[string]int) // coupon key -> instances to drop
	if order.Coupon != nil {
		remove[couponKey(*order.Coupon)]++
	}
	for _, c := range usedProductCoupons {
		remove[couponKey(c)]++
	}

	kept := make([]domain.Coupon, 0, len(user.Coupons))
	for _, c := range user.Coupons {
		if remove[couponKey(c)] > 0 {
			remove[couponKey(c)]--
			continue
		}
		kept = append(kept, c)
	}
	out.Coupons = kept
	return out
}

func couponKey(c domain.Coupon) string {
	if c.ID != "" {
		return "id:" + c.ID
	}
	return "code:" + domain.NormalizeCode(c.Code)
}
