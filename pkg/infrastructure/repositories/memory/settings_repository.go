package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
)

// SettingsRepository holds store settings in memory
type SettingsRepository struct {
	mu       sync.RWMutex
	settings *entities.StoreSettings
}

// NewSettingsRepository creates a repository seeded with settings
func NewSettingsRepository(settings entities.StoreSettings) *SettingsRepository {
	return &SettingsRepository{settings: &settings}
}

// Verify interface compliance
var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// GetStoreSettings returns a copy of the current settings
func (r *SettingsRepository) GetStoreSettings(ctx context.Context) (*entities.StoreSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, fmt.Errorf("store settings: %w", repositories.ErrNotFound)
	}
	settings := *r.settings
	return &settings, nil
}

// SaveStoreSettings validates and replaces the current settings
func (r *SettingsRepository) SaveStoreSettings(settings entities.StoreSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid store settings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = &settings
	return nil
}
