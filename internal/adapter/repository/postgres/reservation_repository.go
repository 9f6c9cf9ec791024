package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

const reservationColumns = `id, number, tenant_id, customer_name, customer_phone, customer_email, reserved_at,
	guest_count, details, promoter_id, source, status, checked_in_at, created_at, updated_at`

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `
	INSERT INTO reservations (` + reservationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.Number, res.TenantID, res.CustomerName, res.CustomerPhone, res.CustomerEmail, res.ReservedAt,
		res.GuestCount, res.Details, res.PromoterID, res.Source, res.Status, res.CheckedInAt, res.CreatedAt, res.UpdatedAt,
	)
	return translate(err, "insert reservation")
}

func (r *ReservationRepository) NextSequence(ctx context.Context, tenantID string, day domain.BusinessDay) (int, error) {
	query := `
	INSERT INTO reservation_sequences (tenant_id, business_day, last_value)
	VALUES ($1, $2, 1)
	ON CONFLICT (tenant_id, business_day)
	DO UPDATE SET last_value = reservation_sequences.last_value + 1
	RETURNING last_value
	`

	var seq int
	if err := r.db.QueryRowContext(ctx, query, tenantID, day.String()).Scan(&seq); err != nil {
		return 0, translate(err, "allocate reservation sequence")
	}
	return seq, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE id = $1 AND tenant_id = $2
	`

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		return nil, translate(err, "get reservation")
	}
	return res, nil
}

func (r *ReservationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.ReservationStatus, at time.Time) error {
	query := `
	UPDATE reservations
	SET status = $1,
		updated_at = $2,
		checked_in_at = CASE WHEN $1 = 'CHECKED_IN' THEN COALESCE(checked_in_at, $2) ELSE checked_in_at END
	WHERE id = $3 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query, to, at, id, from)
	if err != nil {
		return translate(err, "transition reservation")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate(err, "transition reservation")
	}

	if rowsAffected == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *ReservationRepository) Reschedule(ctx context.Context, id uuid.UUID, oldReservedAt, newReservedAt, at time.Time) error {
	query := `
	UPDATE reservations
	SET reserved_at = $1, updated_at = $2
	WHERE id = $3 AND reserved_at = $4
	`

	result, err := r.db.ExecContext(ctx, query, newReservedAt, at, id, oldReservedAt)
	if err != nil {
		return translate(err, "reschedule reservation")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate(err, "reschedule reservation")
	}

	if rowsAffected == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *ReservationRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return translate(err, "check reservation")
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func (r *ReservationRepository) ListInWindow(ctx context.Context, tenantID string, start, end time.Time) ([]domain.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE tenant_id = $1 AND reserved_at >= $2 AND reserved_at < $3
	ORDER BY reserved_at
	`

	return r.list(ctx, query, tenantID, start, end)
}

func (r *ReservationRepository) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE status = 'PENDING' AND reserved_at < $1
	ORDER BY reserved_at
	LIMIT $2
	`

	return r.list(ctx, query, before, limit)
}

func (r *ReservationRepository) ActiveTenants(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT tenant_id FROM reservations WHERE reserved_at >= $1 ORDER BY tenant_id`, since)
	if err != nil {
		return nil, translate(err, "list tenants")
	}

	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var tenantID string
		if err := rows.Scan(&tenantID); err != nil {
			return nil, translate(err, "scan tenant")
		}

		tenants = append(tenants, tenantID)
	}

	return tenants, translate(rows.Err(), "list tenants")
}

func (r *ReservationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "list reservations")
	}

	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, translate(err, "scan reservation")
		}

		out = append(out, *res)
	}

	return out, translate(rows.Err(), "list reservations")
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var checkedInAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Number,
		&res.TenantID,
		&res.CustomerName,
		&res.CustomerPhone,
		&res.CustomerEmail,
		&res.ReservedAt,
		&res.GuestCount,
		&res.Details,
		&res.PromoterID,
		&res.Source,
		&res.Status,
		&checkedInAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkedInAt.Valid {
		res.CheckedInAt = &checkedInAt.Time
	}

	return &res, nil
}
