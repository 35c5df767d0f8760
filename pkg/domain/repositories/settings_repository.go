package repositories

import (
	"context"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// SettingsRepository provides access to admin-managed store settings
type SettingsRepository interface {
	GetStoreSettings(ctx context.Context) (*entities.StoreSettings, error)
}
