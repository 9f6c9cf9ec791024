package postgres

import (
	"context"
	"database/sql"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

// AuditRepository persists every status change.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, e domain.AuditEntry) error {
	query := `
	INSERT INTO reservation_audit (id, tenant_id, reservation_id, event, actor, from_status, to_status, reason, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, e.ID, e.TenantID, e.ReservationID, e.Event, e.Actor, e.FromStatus, e.ToStatus, e.Reason, e.OccurredAt)
	return translate(err, "insert audit entry")
}
