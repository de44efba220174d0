package docstore

import (
	"context"
	"errors"
	"time"

	"abarrotes-backend/internal/domain"

	"github.com/google/uuid"
)

type productRepository struct {
	store *Store
}

func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	docs, err := r.store.Get(ctx, domain.CollectionProducts)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Product](docs)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionProducts, id)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := decode(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	return r.store.Add(ctx, domain.CollectionProducts, p.ID, p)
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		return errors.New("product id is required")
	}
	p.UpdatedAt = time.Now()
	return r.store.Put(ctx, domain.CollectionProducts, p.ID, p)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, domain.CollectionProducts, id)
}
