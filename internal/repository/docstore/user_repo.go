package docstore

import (
	"context"
	"errors"
	"time"

	"abarrotes-backend/internal/domain"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionUsers, id)
	if errors.Is(err, ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := decode(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.store.Get(ctx, domain.CollectionUsers)
	if err != nil {
		return nil, err
	}
	users, err := decodeAll[domain.User](docs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = domain.RoleClient
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	return r.store.Add(ctx, domain.CollectionUsers, u.ID, u)
}

// Save rewrites the whole user document in one statement; wallet and
// coupons always land together.
func (r *userRepository) Save(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		return errors.New("user id is required")
	}
	u.UpdatedAt = time.Now()
	return r.store.Put(ctx, domain.CollectionUsers, u.ID, u)
}
