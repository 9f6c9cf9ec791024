package services

import (
	"context"
	"errors"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

// TenantSettings resolves per-venue policy, filling gaps from defaults.
type TenantSettings struct {
	repo     ports.TenantSettingsRepository
	defaults domain.TenantSettings
	policy   StoragePolicy
}

func NewTenantSettings(repo ports.TenantSettingsRepository, defaults domain.TenantSettings, policy StoragePolicy) *TenantSettings {
	if defaults.ResetHour == 0 && defaults.Location == nil {
		defaults.ResetHour = domain.DefaultResetHour
	}
	return &TenantSettings{repo: repo, defaults: defaults, policy: policy}
}

func (t *TenantSettings) For(ctx context.Context, tenantID string) (domain.TenantSettings, error) {
	settings := t.defaults
	settings.TenantID = tenantID
	if t.repo == nil {
		return settings, nil
	}

	stored, err := call(ctx, t.policy, func(ctx context.Context) (domain.TenantSettings, error) {
		return t.repo.Get(ctx, tenantID)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return domain.TenantSettings{}, err
	}

	if stored.QRWindow > 0 {
		settings.QRWindow = stored.QRWindow
	}
	if stored.Location != nil {
		settings.Location = stored.Location
	}
	if stored.ResetHour > 0 {
		settings.ResetHour = stored.ResetHour
	}
	return settings, nil
}
