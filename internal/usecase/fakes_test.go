package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"abarrotes-backend/internal/domain"
)

// In-memory repository fakes. Each one implements just enough of its
// interface for the usecases under test; failure injection goes through the
// fail* flags.

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
	order    []string
	getAlls  int
}

func newMemProductRepo(products ...domain.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *memProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getAlls++
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.products[id])
	}
	return out, nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("no product %s", id)
	}
	return &p, nil
}

func (r *memProductRepo) Create(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memProductRepo) Update(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]domain.Cart)}
}

func (r *memCartRepo) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		c = domain.Cart{ID: userID, UserID: userID}
	}
	clone := c.Clone()
	return &clone, nil
}

func (r *memCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.UserID] = cart.Clone()
	return nil
}

func (r *memCartRepo) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

type memUserRepo struct {
	mu       sync.Mutex
	users    map[string]domain.User
	failSave bool
	saves    int
}

func newMemUserRepo(users ...domain.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Save(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return fmt.Errorf("save refused")
	}
	r.saves++
	r.users[u.ID] = *u
	return nil
}

type memOrderRepo struct {
	mu         sync.Mutex
	orders     []domain.Order
	failCreate bool
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{} }

func (r *memOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return fmt.Errorf("create refused")
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("no order %s", id)
}

func (r *memOrderRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) GetAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.Order(nil), r.orders...)
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("no order %s", id)
}

func (r *memOrderRepo) UpdateSyncStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].SyncStatus = status
			return nil
		}
	}
	return fmt.Errorf("no order %s", id)
}

type memCouponRepo struct {
	mu      sync.Mutex
	coupons []domain.Coupon
}

func newMemCouponRepo(coupons ...domain.Coupon) *memCouponRepo {
	return &memCouponRepo{coupons: coupons}
}

func (r *memCouponRepo) GetAll(ctx context.Context) ([]domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Coupon(nil), r.coupons...), nil
}

func (r *memCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code = domain.NormalizeCode(code)
	for i := range r.coupons {
		if r.coupons[i].Code == code {
			c := r.coupons[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (r *memCouponRepo) Create(ctx context.Context, c *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons = append(r.coupons, *c)
	return nil
}

func (r *memCouponRepo) Update(ctx context.Context, c *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coupons {
		if r.coupons[i].ID == c.ID {
			r.coupons[i] = *c
			return nil
		}
	}
	return domain.ErrCouponNotFound
}

func (r *memCouponRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coupons {
		if r.coupons[i].ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return domain.ErrCouponNotFound
}

type memSettingsRepo struct {
	mu       sync.Mutex
	settings domain.StoreSettings
}

func newMemSettingsRepo(s domain.StoreSettings) *memSettingsRepo {
	return &memSettingsRepo{settings: s}
}

func (r *memSettingsRepo) Get(ctx context.Context) (*domain.StoreSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings
	return &s, nil
}

func (r *memSettingsRepo) Update(ctx context.Context, s *domain.StoreSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = *s
	return nil
}

// memCache is a TTL-less cache for tests.
type memCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMemCache() *memCache { return &memCache{items: make(map[string]interface{})} }

func (c *memCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memCache) Set(key string, value interface{}, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *memCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *memCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]interface{})
}
