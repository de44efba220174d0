// Package checkout snapshots a priced cart into an immutable order and
// formats the handoff to the messaging channel.
package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/pricing"
)

// Request is the buyer's delivery choice at confirm time.
type Request struct {
	Pickup        bool   `json:"pickup"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

// Assemble builds the order record from one consistent snapshot of the cart
// and its resolution. Lines are deep-copied; the live cart is cleared right
// after and must not share references with the order.
func Assemble(c domain.Cart, res pricing.Resolution, general *domain.Coupon, req Request, settings domain.Settings, now time.Time) domain.Order {
	snapshot := c.Clone()

	deliveryCost := 0.0
	if !req.Pickup {
		deliveryCost = settings.DeliveryCost
	}
	total, _ := decimal.NewFromFloat(res.FinalTotal).
		Add(decimal.NewFromFloat(deliveryCost)).
		Round(2).Float64()
	discount, _ := decimal.NewFromFloat(res.PointsDiscount).
		Add(decimal.NewFromFloat(res.GeneralCouponDiscount)).
		Add(decimal.NewFromFloat(res.ProductCouponDiscount)).
		Round(2).Float64()

	var coupon *domain.Coupon
	if general != nil {
		cp := *general
		coupon = &cp
	}

	return domain.Order{
		ID:                    uuid.NewString(),
		UserID:                snapshot.UserID,
		Lines:                 snapshot.Lines,
		Subtotal:              res.Subtotal,
		PointsUsed:            res.PointsUsed,
		PointsDiscount:        res.PointsDiscount,
		Coupon:                coupon,
		GeneralCouponDiscount: res.GeneralCouponDiscount,
		ProductCouponDiscount: res.ProductCouponDiscount,
		DiscountAmount:        discount,
		DeliveryCost:          deliveryCost,
		Total:                 total,
		Pickup:                req.Pickup,
		Address:               req.Address,
		PaymentMethod:         req.PaymentMethod,
		Status:                domain.OrderStatusInTransit,
		SyncStatus:            domain.SyncPending,
		CreatedAt:             now,
	}
}
