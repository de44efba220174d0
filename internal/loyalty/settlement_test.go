package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrotes-backend/internal/domain"
)

func testSettings() domain.Settings {
	return domain.Settings{PointValue: 0.10, PointsPercentage: 1.0}
}

func TestSettlePercentageEarn(t *testing.T) {
	order := domain.Order{
		Lines: []domain.CartLine{
			{Kind: domain.LineSimple, UnitPrice: 20, Quantity: 3},
		},
	}
	user := domain.User{Wallet: 10}

	out := Settle(order, user, nil, testSettings())

	// 1% of 60.00 earned on top of the untouched balance.
	assert.Equal(t, 10.6, out.Wallet)
}

func TestSettleBonusPointsOverrideEarn(t *testing.T) {
	order := domain.Order{
		Lines: []domain.CartLine{
			// Override: 5 points per unit, the percentage does not apply.
			{Kind: domain.LineSimple, UnitPrice: 20, Quantity: 2, BonusPoints: 5},
			// No override: falls back to the percentage.
			{Kind: domain.LineSimple, UnitPrice: 100, Quantity: 1},
		},
	}

	out := Settle(order, domain.User{}, nil, testSettings())

	assert.Equal(t, 11.0, out.Wallet)
}

func TestSettleDeductsPointsUsed(t *testing.T) {
	order := domain.Order{
		PointsUsed: 30,
		Lines: []domain.CartLine{
			{Kind: domain.LineSimple, UnitPrice: 50, Quantity: 1},
		},
	}
	user := domain.User{Wallet: 100}

	out := Settle(order, user, nil, testSettings())

	assert.Equal(t, 70.5, out.Wallet)
}

func TestSettleWalletNeverNegative(t *testing.T) {
	order := domain.Order{PointsUsed: 1000}
	user := domain.User{Wallet: 50}

	out := Settle(order, user, nil, testSettings())

	assert.Equal(t, 0.0, out.Wallet)
}

func TestSettleConsumesGeneralCoupon(t *testing.T) {
	coupon := domain.Coupon{ID: "g1", Code: "AHORRA15", Type: domain.CouponGeneral, Amount: 15}
	order := domain.Order{Coupon: &coupon}
	user := domain.User{Coupons: []domain.Coupon{
		coupon,
		{ID: "g2", Code: "OTRO", Type: domain.CouponGeneral, Amount: 5},
	}}

	out := Settle(order, user, nil, testSettings())

	require.Len(t, out.Coupons, 1)
	assert.Equal(t, "g2", out.Coupons[0].ID)
}

func TestSettleConsumesOnlyUsedInstances(t *testing.T) {
	c1 := domain.Coupon{ID: "c1", Code: "PROD-p1-0001", Type: domain.CouponProduct, ProductID: "p1"}
	c2 := domain.Coupon{ID: "c2", Code: "PROD-p1-0002", Type: domain.CouponProduct, ProductID: "p1"}
	user := domain.User{Coupons: []domain.Coupon{c1, c2}}

	out := Settle(domain.Order{}, user, []domain.Coupon{c1}, testSettings())

	require.Len(t, out.Coupons, 1)
	assert.Equal(t, "c2", out.Coupons[0].ID)
}

func TestSettleConsumesByCodeWhenNoID(t *testing.T) {
	// Grandfathered coupons without an id fall back to code identity; one
	// instance consumed per use, not the whole code group.
	dup := domain.Coupon{Code: "PROD-p1-0003", Type: domain.CouponProduct, ProductID: "p1"}
	user := domain.User{Coupons: []domain.Coupon{dup, dup}}

	out := Settle(domain.Order{}, user, []domain.Coupon{dup}, testSettings())

	assert.Len(t, out.Coupons, 1)
}

func TestSettleDoesNotMutateInput(t *testing.T) {
	coupon := domain.Coupon{ID: "g1", Code: "AHORRA15", Type: domain.CouponGeneral}
	user := domain.User{Wallet: 100, Coupons: []domain.Coupon{coupon}}
	order := domain.Order{PointsUsed: 10, Coupon: &coupon}

	Settle(order, user, nil, testSettings())

	assert.Equal(t, 100.0, user.Wallet)
	assert.Len(t, user.Coupons, 1)
}
