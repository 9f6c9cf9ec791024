package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

type HostTrackingRepository struct {
	db *sql.DB
}

func NewHostTrackingRepository(db *sql.DB) *HostTrackingRepository {
	return &HostTrackingRepository{db: db}
}

// Upsert keeps one record per reservation; the latest staff entry wins.
func (r *HostTrackingRepository) Upsert(ctx context.Context, t *domain.HostTracking) error {
	query := `
	INSERT INTO host_tracking (reservation_id, tenant_id, observed_count, staff_id, recorded_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (reservation_id)
	DO UPDATE SET observed_count = EXCLUDED.observed_count,
		staff_id = EXCLUDED.staff_id,
		recorded_at = EXCLUDED.recorded_at
	`

	_, err := r.db.ExecContext(ctx, query, t.ReservationID, t.TenantID, t.ObservedCount, t.StaffID, t.RecordedAt)
	return translate(err, "upsert host tracking")
}

func (r *HostTrackingRepository) Get(ctx context.Context, reservationID uuid.UUID) (*domain.HostTracking, error) {
	query := `
	SELECT reservation_id, tenant_id, observed_count, staff_id, recorded_at
	FROM host_tracking
	WHERE reservation_id = $1
	`

	var t domain.HostTracking
	err := r.db.QueryRowContext(ctx, query, reservationID).Scan(&t.ReservationID, &t.TenantID, &t.ObservedCount, &t.StaffID, &t.RecordedAt)
	if err != nil {
		return nil, translate(err, "get host tracking")
	}
	return &t, nil
}

func (r *HostTrackingRepository) ListByReservations(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]domain.HostTracking, error) {
	query := `
	SELECT reservation_id, tenant_id, observed_count, staff_id, recorded_at
	FROM host_tracking
	WHERE reservation_id = ANY($1::uuid[])
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(uuidStrings(reservationIDs)))
	if err != nil {
		return nil, translate(err, "list host tracking")
	}

	defer rows.Close()

	out := make(map[uuid.UUID]domain.HostTracking, len(reservationIDs))
	for rows.Next() {
		var t domain.HostTracking
		if err := rows.Scan(&t.ReservationID, &t.TenantID, &t.ObservedCount, &t.StaffID, &t.RecordedAt); err != nil {
			return nil, translate(err, "scan host tracking")
		}

		out[t.ReservationID] = t
	}

	return out, translate(rows.Err(), "list host tracking")
}
