package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

// WalkInRepository is the ledger of guests admitted without a reservation.
type WalkInRepository struct {
	db *sql.DB
}

func NewWalkInRepository(db *sql.DB) *WalkInRepository {
	return &WalkInRepository{db: db}
}

func (r *WalkInRepository) Add(ctx context.Context, tenantID string, day domain.BusinessDay, guests int, at time.Time) error {
	query := `
	INSERT INTO walk_ins (id, tenant_id, business_day, guests, recorded_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), tenantID, day.String(), guests, at)
	return translate(err, "insert walk-in")
}

func (r *WalkInRepository) TotalForDays(ctx context.Context, tenantID string, days []domain.BusinessDay) (int, error) {
	if len(days) == 0 {
		return 0, nil
	}

	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.String()
	}

	query := `
	SELECT COALESCE(SUM(guests), 0)
	FROM walk_ins
	WHERE tenant_id = $1 AND business_day = ANY($2::date[])
	`

	var total int
	if err := r.db.QueryRowContext(ctx, query, tenantID, pq.Array(labels)).Scan(&total); err != nil {
		return 0, translate(err, "sum walk-ins")
	}
	return total, nil
}
