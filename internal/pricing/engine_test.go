package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrotes-backend/internal/domain"
)

func testSettings() domain.Settings {
	return domain.Settings{PointValue: 0.10, PointsPercentage: 1.0}
}

func threeColas() []domain.CartLine {
	return []domain.CartLine{
		{ID: "p1", Kind: domain.LineSimple, ProductID: "p1", Name: "Refresco de Cola", UnitPrice: 20, Quantity: 3},
	}
}

func colaCoupon(id string) domain.Coupon {
	return domain.Coupon{
		ID:          id,
		Code:        "PROD-p1-" + id,
		Type:        domain.CouponProduct,
		ProductID:   "p1",
		ProductName: "Refresco de Cola",
	}
}

func TestResolveBareSubtotal(t *testing.T) {
	res := Resolve(threeColas(), domain.User{}, 0, nil, testSettings())

	assert.Equal(t, 60.0, res.Subtotal)
	assert.Equal(t, 60.0, res.FinalTotal)
	assert.Zero(t, res.ProductCouponDiscount)
	assert.Zero(t, res.PointsDiscount)
	assert.Zero(t, res.GeneralCouponDiscount)
}

func TestResolvePointsRedemption(t *testing.T) {
	user := domain.User{Wallet: 50}

	res := Resolve(threeColas(), user, 10, nil, testSettings())

	assert.Equal(t, 10, res.PointsUsed)
	assert.Equal(t, 1.0, res.PointsDiscount)
	assert.Equal(t, 59.0, res.FinalTotal)
}

func TestResolveProductCoupons(t *testing.T) {
	user := domain.User{Coupons: []domain.Coupon{colaCoupon("c1"), colaCoupon("c2")}}

	res := Resolve(threeColas(), user, 10, nil, testSettings())

	assert.Equal(t, 40.0, res.ProductCouponDiscount)
	require.Len(t, res.UsedProductCoupons, 2)
	assert.Equal(t, 19.0, res.FinalTotal)
}

func TestResolveGeneralCouponAdditive(t *testing.T) {
	user := domain.User{Coupons: []domain.Coupon{colaCoupon("c1"), colaCoupon("c2")}}
	general := &domain.Coupon{ID: "g1", Code: "AHORRA15", Type: domain.CouponGeneral, Amount: 15}

	// All three discounts subtract from the same 60.00 base; nothing
	// compounds.
	res := Resolve(threeColas(), user, 10, general, testSettings())

	assert.Equal(t, 40.0, res.ProductCouponDiscount)
	assert.Equal(t, 1.0, res.PointsDiscount)
	assert.Equal(t, 15.0, res.GeneralCouponDiscount)
	assert.Equal(t, 4.0, res.FinalTotal)
}

func TestResolveZeroFloor(t *testing.T) {
	general := &domain.Coupon{ID: "g1", Code: "MEGA", Type: domain.CouponGeneral, Amount: 500}

	res := Resolve(threeColas(), domain.User{}, 0, general, testSettings())

	assert.Equal(t, 0.0, res.FinalTotal)
	// The recorded discount stays at face value even past the floor.
	assert.Equal(t, 500.0, res.GeneralCouponDiscount)
}

func TestResolveCouponConsumptionCappedAtQuantity(t *testing.T) {
	user := domain.User{Coupons: []domain.Coupon{
		colaCoupon("c1"), colaCoupon("c2"), colaCoupon("c3"), colaCoupon("c4"),
	}}

	res := Resolve(threeColas(), user, 0, nil, testSettings())

	require.Len(t, res.UsedProductCoupons, 3)
	assert.Equal(t, 60.0, res.ProductCouponDiscount)
	assert.Equal(t, 0.0, res.FinalTotal)
}

func TestResolveScarceCouponFirstLineWins(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Kind: domain.LineSimple, ProductID: "p1", Name: "Refresco de Cola", UnitPrice: 20, Quantity: 1},
		{ID: "b", Kind: domain.LineSimple, ProductID: "p2", Name: "Pan Blanco", UnitPrice: 42, Quantity: 1},
	}
	user := domain.User{Coupons: []domain.Coupon{colaCoupon("c1")}}

	res := Resolve(lines, user, 0, nil, testSettings())

	require.Len(t, res.UsedProductCoupons, 1)
	assert.Equal(t, "c1", res.UsedProductCoupons[0].ID)
	assert.Equal(t, 20.0, res.ProductCouponDiscount)
}

func TestResolveProductCouponInGeneralSlotIsInert(t *testing.T) {
	// A product-typed coupon passed where a general coupon goes contributes
	// nothing; only step 1 redeems product coupons, and only from the user's
	// pool.
	misplaced := colaCoupon("c1")

	res := Resolve(threeColas(), domain.User{}, 0, &misplaced, testSettings())

	assert.Zero(t, res.GeneralCouponDiscount)
	assert.Zero(t, res.ProductCouponDiscount)
	assert.Equal(t, 60.0, res.FinalTotal)
}

func TestResolveMatchesRenamedProductById(t *testing.T) {
	// The product was renamed after the coupon was issued; the id embedded in
	// the code still redeems.
	lines := []domain.CartLine{
		{ID: "p1", Kind: domain.LineSimple, ProductID: "p1", Name: "Refresco de Cola 600ml", UnitPrice: 20, Quantity: 1},
	}
	user := domain.User{Coupons: []domain.Coupon{colaCoupon("c1")}}

	res := Resolve(lines, user, 0, nil, testSettings())

	assert.Equal(t, 20.0, res.ProductCouponDiscount)
}

func TestResolveIsIdempotent(t *testing.T) {
	user := domain.User{Wallet: 50, Coupons: []domain.Coupon{colaCoupon("c1")}}
	general := &domain.Coupon{ID: "g1", Code: "AHORRA15", Type: domain.CouponGeneral, Amount: 15}

	first := Resolve(threeColas(), user, 10, general, testSettings())
	second := Resolve(threeColas(), user, 10, general, testSettings())

	assert.Equal(t, first, second)
}
