package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"abarrotes-backend/internal/cart"
	"abarrotes-backend/internal/domain"
)

// CartUsecase owns the load/mutate/save lifecycle of the per-user cart
// document; the ledger itself stays a pure in-memory structure.
type CartUsecase struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	maxQuantity int
}

func NewCartUsecase(cartRepo domain.CartRepository, productRepo domain.ProductRepository, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		maxQuantity: maxQuantity,
	}
}

// CartView is the cart plus its derived totals.
type CartView struct {
	Cart  domain.Cart `json:"cart"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

func (u *CartUsecase) Get(ctx context.Context, userID string) (*CartView, error) {
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.view(c), nil
}

// AddSimple routes through the ledger merge rules. Weight-sold products are
// rejected here; the storefront must send them through AddBulk with a
// weight selection.
func (u *CartUsecase) AddSimple(ctx context.Context, userID, productID string, qty int) (*CartView, error) {
	p, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ledger := cart.NewLedger(c.Lines)
	if err := ledger.AddSimple(*p, qty); err != nil {
		return nil, err
	}
	if err := u.checkLimits(*p, ledger.Lines()); err != nil {
		return nil, err
	}
	return u.save(ctx, c, ledger)
}

// AddBulk appends a weight selection priced per kg from the product's
// snapshot price.
func (u *CartUsecase) AddBulk(ctx context.Context, userID, productID string, weight float64, note string) (*CartView, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("weight must be greater than 0")
	}
	p, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPrice, _ := decimal.NewFromFloat(p.Price).
		Mul(decimal.NewFromFloat(weight)).
		Round(2).Float64()

	ledger := cart.NewLedger(c.Lines)
	ledger.AddBulk(*p, weight, totalPrice, note)
	return u.save(ctx, c, ledger)
}

func (u *CartUsecase) AddCombo(ctx context.Context, userID string, combo domain.Combo) (*CartView, error) {
	if combo.TotalPrice <= 0 {
		return nil, fmt.Errorf("combo price must be greater than 0")
	}
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger := cart.NewLedger(c.Lines)
	ledger.AddCombo(combo)
	return u.save(ctx, c, ledger)
}

func (u *CartUsecase) Remove(ctx context.Context, userID string, index int) (*CartView, error) {
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger := cart.NewLedger(c.Lines)
	if err := ledger.Remove(index); err != nil {
		return nil, err
	}
	return u.save(ctx, c, ledger)
}

func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID string, index, delta int) (*CartView, error) {
	c, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger := cart.NewLedger(c.Lines)
	if err := ledger.UpdateQuantity(index, delta); err != nil {
		return nil, err
	}
	return u.save(ctx, c, ledger)
}

func (u *CartUsecase) Clear(ctx context.Context, userID string) error {
	return u.cartRepo.Clear(ctx, userID)
}

func (u *CartUsecase) save(ctx context.Context, c *domain.Cart, ledger *cart.Ledger) (*CartView, error) {
	c.Lines = ledger.Lines()
	if err := u.cartRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return u.view(c), nil
}

func (u *CartUsecase) view(c *domain.Cart) *CartView {
	ledger := cart.NewLedger(c.Lines)
	return &CartView{Cart: *c, Total: ledger.Total(), Count: ledger.Count()}
}

// checkLimits enforces stock and the max-quantity guard for the product
// that was just touched.
func (u *CartUsecase) checkLimits(p domain.Product, lines []domain.CartLine) error {
	qty := 0
	for _, l := range lines {
		if l.Kind == domain.LineSimple && l.ProductID == p.ID {
			qty = l.Quantity
		}
	}
	if u.maxQuantity > 0 && qty > u.maxQuantity {
		return fmt.Errorf("quantity exceeds the %d unit limit", u.maxQuantity)
	}
	if p.Stock != nil && qty > *p.Stock {
		return fmt.Errorf("insufficient stock for %s", p.Name)
	}
	return nil
}
