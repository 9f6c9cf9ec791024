package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

type TenantSettingsRepository struct {
	db *sql.DB
}

func NewTenantSettingsRepository(db *sql.DB) *TenantSettingsRepository {
	return &TenantSettingsRepository{db: db}
}

func (r *TenantSettingsRepository) Get(ctx context.Context, tenantID string) (domain.TenantSettings, error) {
	query := `
	SELECT qr_window_seconds, timezone, reset_hour
	FROM tenant_settings
	WHERE tenant_id = $1
	`

	var windowSeconds, resetHour int
	var timezone string
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&windowSeconds, &timezone, &resetHour)
	if err != nil {
		return domain.TenantSettings{}, translate(err, "get tenant settings")
	}

	settings := domain.TenantSettings{
		TenantID:  tenantID,
		QRWindow:  time.Duration(windowSeconds) * time.Second,
		ResetHour: resetHour,
	}
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return domain.TenantSettings{}, fmt.Errorf("tenant %s has invalid timezone %q: %w", tenantID, timezone, err)
		}
		settings.Location = loc
	}
	return settings, nil
}
