package usecase

import (
	"context"
	"fmt"
	"time"

	"abarrotes-backend/internal/catalog"
	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/search"
	"abarrotes-backend/pkg/cache"
)

const (
	cacheKeyProducts = "catalog:products"
	cacheKeyIndex    = "catalog:index"
)

// CatalogUsecase serves the storefront catalog: cached product snapshots,
// the fuzzy index built over them, and the filter/sort/window pipeline.
type CatalogUsecase struct {
	productRepo domain.ProductRepository
	cache       cache.CacheService
	cacheTTL    time.Duration
	pageSize    int
	searchOpts  search.Options
}

func NewCatalogUsecase(productRepo domain.ProductRepository, c cache.CacheService, cacheTTL time.Duration, pageSize int) *CatalogUsecase {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &CatalogUsecase{
		productRepo: productRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
		pageSize:    pageSize,
		searchOpts:  search.DefaultOptions(),
	}
}

// BrowseResult is one windowed view over the filtered catalog.
type BrowseResult struct {
	Products    []domain.Product `json:"products"`
	Suggestions []domain.Product `json:"suggestions,omitempty"`
	HasMore     bool             `json:"hasMore"`
	Total       int              `json:"total"`
}

// Browse runs the pipeline. pages is the client's visible-window cursor in
// whole pages (1-based); any filter change resets it to 1 on the caller's
// side.
func (u *CatalogUsecase) Browse(ctx context.Context, params catalog.Params, pages int) (*BrowseResult, error) {
	products, index, err := u.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	filtered := catalog.Filter(products, index, params)

	w := catalog.NewWindow(u.pageSize)
	for p := 1; p < pages; p++ {
		w.Grow()
	}
	visible, hasMore := w.Cut(filtered.Products)

	return &BrowseResult{
		Products:    visible,
		Suggestions: filtered.Suggestions,
		HasMore:     hasMore,
		Total:       len(filtered.Products),
	}, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// --- Admin ---

func (u *CatalogUsecase) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price <= 0 {
		return fmt.Errorf("product price must be greater than 0")
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		// Below-price originals never register as a discount; drop them.
		p.OriginalPrice = nil
	}
	if err := u.productRepo.Create(ctx, p); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if _, err := u.productRepo.GetByID(ctx, p.ID); err != nil {
		return fmt.Errorf("product not found")
	}
	if err := u.productRepo.Update(ctx, p); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

// snapshot returns the cached product list and its index, rebuilding both
// together so they never diverge.
func (u *CatalogUsecase) snapshot(ctx context.Context) ([]domain.Product, *search.Index, error) {
	if cached, ok := u.cache.Get(cacheKeyProducts); ok {
		if idx, ok2 := u.cache.Get(cacheKeyIndex); ok2 {
			return cached.([]domain.Product), idx.(*search.Index), nil
		}
	}

	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	index := search.New(products, u.searchOpts)

	u.cache.Set(cacheKeyProducts, products, u.cacheTTL)
	u.cache.Set(cacheKeyIndex, index, u.cacheTTL)
	return products, index, nil
}

func (u *CatalogUsecase) invalidate() {
	u.cache.Delete(cacheKeyProducts)
	u.cache.Delete(cacheKeyIndex)
}
