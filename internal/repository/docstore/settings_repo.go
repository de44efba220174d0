package docstore

import (
	"context"
	"errors"

	"abarrotes-backend/internal/domain"
)

// settingsDocID is the single well-known settings document.
const settingsDocID = "store"

type settingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) domain.SettingsRepository {
	return &settingsRepository{store: store}
}

// Get tolerates a missing document; callers apply defaults through
// StoreSettings.Normalized.
func (r *settingsRepository) Get(ctx context.Context) (*domain.StoreSettings, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionSettings, settingsDocID)
	if errors.Is(err, ErrNotFound) {
		return &domain.StoreSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.StoreSettings
	if err := decode(doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.StoreSettings) error {
	return r.store.Put(ctx, domain.CollectionSettings, settingsDocID, s)
}
