package domain

import (
	"context"
	"time"
)

// Order is an immutable snapshot taken at confirm time. The pricing core
// creates it once and never mutates it; status updates past "in transit"
// belong to the back-office collaborator.
type Order struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Lines []CartLine `json:"lines"` // deep copy of the cart

	Subtotal              float64 `json:"subtotal"`
	PointsUsed            int     `json:"pointsUsed"`
	PointsDiscount        float64 `json:"pointsDiscount"`
	Coupon                *Coupon `json:"coupon"` // the one general coupon applied
	GeneralCouponDiscount float64 `json:"generalCouponDiscount"`
	ProductCouponDiscount float64 `json:"productCouponDiscount"`
	DiscountAmount        float64 `json:"discountAmount"`
	DeliveryCost          float64 `json:"deliveryCost"`
	Total                 float64 `json:"total"`

	Pickup        bool   `json:"pickup"`
	Address       string `json:"address,omitempty"`
	PaymentMethod string `json:"paymentMethod"`

	Status string `json:"status"`
	// SyncStatus makes the optimistic-confirm policy explicit: the user sees
	// a confirmed order before the remote write lands.
	SyncStatus string `json:"syncStatus"`

	CreatedAt time.Time `json:"createdAt"`
}

type OrderFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateSyncStatus(ctx context.Context, id, syncStatus string) error
}
