package docstore

import (
	"context"
	"errors"
	"time"

	"abarrotes-backend/internal/domain"
)

type cartRepository struct {
	store *Store
}

func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{store: store}
}

// Carts are keyed by user id; one live cart per user.
func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionCarts, userID)
	if errors.Is(err, ErrNotFound) {
		return &domain.Cart{ID: userID, UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	var c domain.Cart
	if err := decode(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart.UserID == "" {
		return errors.New("cart user id is required")
	}
	cart.ID = cart.UserID
	cart.UpdatedAt = time.Now()
	return r.store.Put(ctx, domain.CollectionCarts, cart.UserID, cart)
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, domain.CollectionCarts, userID)
}
