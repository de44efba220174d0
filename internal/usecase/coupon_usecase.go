package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"abarrotes-backend/internal/domain"
)

// CouponUsecase manages the admin-global pool and the user-owned wallet of
// single-use coupons.
type CouponUsecase struct {
	couponRepo domain.CouponRepository
	userRepo   domain.UserRepository
}

func NewCouponUsecase(couponRepo domain.CouponRepository, userRepo domain.UserRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo, userRepo: userRepo}
}

// CreateCouponRequest covers both arms of the union; exactly one set of
// fields applies per type.
type CreateCouponRequest struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"` // "general" or "product"
	Amount      float64 `json:"amount"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Points      int     `json:"points"`
}

func (u *CouponUsecase) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*domain.Coupon, error) {
	coupon := &domain.Coupon{
		Type:   domain.CouponType(req.Type),
		Points: req.Points,
	}
	if req.Points < 0 {
		return nil, fmt.Errorf("points cost cannot be negative")
	}

	switch coupon.Type {
	case domain.CouponGeneral:
		if req.Amount <= 0 {
			return nil, fmt.Errorf("coupon amount must be greater than 0")
		}
		if req.Code == "" {
			return nil, fmt.Errorf("coupon code is required")
		}
		coupon.Code = domain.NormalizeCode(req.Code)
		coupon.Amount = req.Amount
	case domain.CouponProduct:
		if req.ProductID == "" || req.ProductName == "" {
			return nil, fmt.Errorf("product coupons need a target product id and name")
		}
		coupon.ProductID = req.ProductID
		coupon.ProductName = req.ProductName
		coupon.Code = domain.NewProductCouponCode(req.ProductID)
	default:
		return nil, fmt.Errorf("coupon type must be 'general' or 'product'")
	}

	// Shared codes must stay unique within the global pool.
	if existing, err := u.couponRepo.GetByCode(ctx, coupon.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("coupon code '%s' already exists", coupon.Code)
	}

	if err := u.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (u *CouponUsecase) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return u.couponRepo.GetAll(ctx)
}

func (u *CouponUsecase) DeleteCoupon(ctx context.Context, id string) error {
	return u.couponRepo.Delete(ctx, id)
}

// Grant copies a global coupon into a user's owned pool with a fresh
// instance id; consuming the copy never touches the global pool.
func (u *CouponUsecase) Grant(ctx context.Context, userID, couponID string) (*domain.Coupon, error) {
	globals, err := u.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var source *domain.Coupon
	for i := range globals {
		if globals[i].ID == couponID {
			source = &globals[i]
			break
		}
	}
	if source == nil {
		return nil, domain.ErrCouponNotFound
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	granted := *source
	granted.ID = uuid.NewString()
	granted.Points = 0 // granted copies cost nothing to use
	user.Coupons = append(user.Coupons, granted)

	if err := u.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to grant coupon: %w", err)
	}
	return &granted, nil
}

// Redeem buys a coupon from the rewards catalog with wallet points. The
// debit and the new coupon land in one merged user write.
func (u *CouponUsecase) Redeem(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	source, err := u.couponRepo.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrCouponNotFound) {
		return nil, domain.ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if float64(source.Points) > user.Wallet {
		return nil, domain.ErrInsufficientPoints
	}

	owned := *source
	owned.ID = uuid.NewString()
	owned.Points = 0
	user.Wallet -= float64(source.Points)
	user.Coupons = append(user.Coupons, owned)

	if err := u.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to redeem coupon: %w", err)
	}
	return &owned, nil
}
