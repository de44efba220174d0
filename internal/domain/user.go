package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInsufficientPoints = errors.New("insufficient points balance")
)

// User carries the loyalty state the settlement step mutates: the points
// wallet (never negative) and the owned single-use coupons.
type User struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Role    string   `json:"role"`
	Wallet  float64  `json:"wallet"`
	Coupons []Coupon `json:"coupons"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedCouponByCode searches the user's pool. User-pool lookup takes
// precedence over the admin-global pool everywhere a code is resolved.
func (u User) OwnedCouponByCode(code string) (*Coupon, bool) {
	code = NormalizeCode(code)
	for i := range u.Coupons {
		if u.Coupons[i].Code == code {
			return &u.Coupons[i], true
		}
	}
	return nil, false
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	// Save rewrites the whole user document in one step. Loyalty settlement
	// depends on this being a single merged write, never two partial ones.
	Save(ctx context.Context, u *User) error
}
