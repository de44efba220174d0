package docstore

import (
	"context"
	"sort"

	"abarrotes-backend/internal/domain"
)

type orderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.store.Add(ctx, domain.CollectionOrders, o.ID, o)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionOrders, id)
	if err != nil {
		return nil, err
	}
	var o domain.Order
	if err := decode(doc, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, _, err := r.GetAll(ctx, domain.OrderFilter{UserID: userID})
	return orders, err
}

// GetAll filters in memory; the document contract exposes no queries beyond
// "dump the collection".
func (r *orderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	docs, err := r.store.Get(ctx, domain.CollectionOrders)
	if err != nil {
		return nil, 0, err
	}
	all, err := decodeAll[domain.Order](docs)
	if err != nil {
		return nil, 0, err
	}

	filtered := all[:0:0]
	for _, o := range all {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		filtered = append(filtered, o)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	if filter.Offset > 0 {
		if filter.Offset >= len(filtered) {
			return []domain.Order{}, total, nil
		}
		filtered = filtered[filter.Offset:]
	}
	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[:filter.Limit]
	}
	return filtered, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.store.Update(ctx, domain.CollectionOrders, id, map[string]string{"status": status})
}

func (r *orderRepository) UpdateSyncStatus(ctx context.Context, id, syncStatus string) error {
	return r.store.Update(ctx, domain.CollectionOrders, id, map[string]string{"syncStatus": syncStatus})
}
