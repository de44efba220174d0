package docstore

import (
	"context"
	"errors"
	"time"

	"abarrotes-backend/internal/domain"

	"github.com/google/uuid"
)

type couponRepository struct {
	store *Store
}

// NewCouponRepository manages the admin-global coupon pool.
func NewCouponRepository(store *Store) domain.CouponRepository {
	return &couponRepository{store: store}
}

func (r *couponRepository) GetAll(ctx context.Context) ([]domain.Coupon, error) {
	docs, err := r.store.Get(ctx, domain.CollectionCoupons)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Coupon](docs)
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	coupons, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	code = domain.NormalizeCode(code)
	for i := range coupons {
		if coupons[i].Code == code {
			return &coupons[i], nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Code = domain.NormalizeCode(c.Code)
	c.CreatedAt = time.Now()
	return r.store.Add(ctx, domain.CollectionCoupons, c.ID, c)
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	if c.ID == "" {
		return errors.New("coupon id is required")
	}
	c.Code = domain.NormalizeCode(c.Code)
	return r.store.Put(ctx, domain.CollectionCoupons, c.ID, c)
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, domain.CollectionCoupons, id)
}
