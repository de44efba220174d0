package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"abarrotes-backend/internal/checkout"
	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/loyalty"
	"abarrotes-backend/internal/pricing"
	"abarrotes-backend/pkg/logger"
)

// CheckoutUsecase orchestrates quote and confirm. Both work from a single
// consistent snapshot of cart, user and settings taken at entry; nothing is
// re-read mid-computation.
type CheckoutUsecase struct {
	cartRepo     domain.CartRepository
	userRepo     domain.UserRepository
	orderRepo    domain.OrderRepository
	couponRepo   domain.CouponRepository
	settingsRepo domain.SettingsRepository

	storePhone string // WhatsApp handoff number
}

func NewCheckoutUsecase(
	cartRepo domain.CartRepository,
	userRepo domain.UserRepository,
	orderRepo domain.OrderRepository,
	couponRepo domain.CouponRepository,
	settingsRepo domain.SettingsRepository,
	storePhone string,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		couponRepo:   couponRepo,
		settingsRepo: settingsRepo,
		storePhone:   storePhone,
	}
}

type QuoteRequest struct {
	CouponCode     string `json:"couponCode"`
	PointsToRedeem int    `json:"pointsToRedeem"`
}

type Quote struct {
	Resolution    pricing.Resolution `json:"resolution"`
	Coupon        *domain.Coupon     `json:"coupon"`
	CouponMessage string             `json:"couponMessage,omitempty"`
	WalletPoints  float64            `json:"walletPoints"`
}

type ConfirmRequest struct {
	checkout.Request
	CouponCode     string `json:"couponCode"`
	PointsToRedeem int    `json:"pointsToRedeem"`
}

type ConfirmResult struct {
	Order       domain.Order `json:"order"`
	WhatsAppURL string       `json:"whatsappUrl"`
}

type snapshot struct {
	cart     domain.Cart
	user     domain.User
	settings domain.Settings
	coupon   *domain.Coupon
	message  string
	points   int
}

// Quote prices the cart without committing anything.
func (u *CheckoutUsecase) Quote(ctx context.Context, userID string, req QuoteRequest) (*Quote, error) {
	snap, err := u.take(ctx, userID, req.CouponCode, req.PointsToRedeem)
	if err != nil {
		return nil, err
	}
	res := pricing.Resolve(snap.cart.Lines, snap.user, snap.points, snap.coupon, snap.settings)
	return &Quote{
		Resolution:    res,
		Coupon:        snap.coupon,
		CouponMessage: snap.message,
		WalletPoints:  snap.user.Wallet,
	}, nil
}

// Confirm turns the snapshot into an order, settles loyalty state and hands
// the summary to WhatsApp.
//
// This is an optimistic confirm by design: once computed, the order is
// final from the buyer's perspective. Persistence failures are logged and
// surfaced through syncStatus, never rolled back into the cleared cart.
func (u *CheckoutUsecase) Confirm(ctx context.Context, userID string, req ConfirmRequest) (*ConfirmResult, error) {
	snap, err := u.take(ctx, userID, req.CouponCode, req.PointsToRedeem)
	if err != nil {
		return nil, err
	}
	if len(snap.cart.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	if !req.Pickup && req.Address == "" {
		return nil, fmt.Errorf("delivery address is required")
	}

	res := pricing.Resolve(snap.cart.Lines, snap.user, snap.points, snap.coupon, snap.settings)
	order := checkout.Assemble(snap.cart, res, snap.coupon, req.Request, snap.settings, time.Now())
	settled := loyalty.Settle(order, snap.user, res.UsedProductCoupons, snap.settings)

	log := logger.WithContext(ctx)

	// Local state is confirmed first; the cleared cart is never restored.
	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart after confirm")
	}

	synced := true
	if err := u.orderRepo.Create(ctx, &order); err != nil {
		synced = false
		log.Error().Err(err).Str("order_id", order.ID).Msg("order persist failed, needs background retry")
	}
	if err := u.userRepo.Save(ctx, &settled); err != nil {
		synced = false
		log.Error().Err(err).Str("user_id", userID).Msg("loyalty persist failed, needs background retry")
	}

	if synced {
		order.SyncStatus = domain.SyncConfirmed
		if err := u.orderRepo.UpdateSyncStatus(ctx, order.ID, domain.SyncConfirmed); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID).Msg("sync status update failed")
		}
	} else {
		order.SyncStatus = domain.SyncFailed
	}

	return &ConfirmResult{
		Order:       order,
		WhatsAppURL: checkout.DeepLink(u.storePhone, order),
	}, nil
}

func (u *CheckoutUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.orderRepo.GetByUserID(ctx, userID)
}

// take loads the full snapshot once. Coupon codes that resolve nowhere are
// reported, not failed: the quote proceeds with zero coupon discount.
func (u *CheckoutUsecase) take(ctx context.Context, userID, couponCode string, points int) (*snapshot, error) {
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	stored, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	snap := &snapshot{
		cart:     c.Clone(),
		user:     *user,
		settings: stored.Normalized(),
	}

	if couponCode != "" {
		globals, err := u.couponRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load coupons: %w", err)
		}
		coupon, err := pricing.ResolveCode(couponCode, snap.user, globals)
		if errors.Is(err, domain.ErrCouponNotFound) {
			snap.message = "coupon not found"
		} else if err != nil {
			return nil, err
		} else {
			snap.coupon = coupon
		}
	}

	// The engine trusts its caller on points; the clamp lives here.
	snap.points = points
	if snap.points < 0 {
		snap.points = 0
	}
	if float64(snap.points) > snap.user.Wallet {
		snap.points = int(snap.user.Wallet)
	}
	return snap, nil
}
