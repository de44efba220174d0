package pricing

import "abarrotes-backend/internal/domain"

// ResolveCode turns a code string into a coupon. The user's owned pool is
// searched first; only on a miss does the admin-global pool apply.
// Comparison is case-insensitive.
func ResolveCode(code string, user domain.User, globals []domain.Coupon) (*domain.Coupon, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return nil, domain.ErrCouponNotFound
	}
	if c, ok := user.OwnedCouponByCode(normalized); ok {
		return c, nil
	}
	for i := range globals {
		if domain.NormalizeCode(globals[i].Code) == normalized {
			return &globals[i], nil
		}
	}
	return nil, domain.ErrCouponNotFound
}
