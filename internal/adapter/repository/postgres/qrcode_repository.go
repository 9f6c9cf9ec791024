package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

const qrColumns = `token, reservation_id, tenant_id, version, scan_count, active, issued_for, created_at, expires_at, last_scanned_at`

type QRCodeRepository struct {
	db *sql.DB
}

func NewQRCodeRepository(db *sql.DB) *QRCodeRepository {
	return &QRCodeRepository{db: db}
}

func (r *QRCodeRepository) Issue(ctx context.Context, qr *domain.QRCode) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return translate(err, "begin qr issue")
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
	UPDATE reservation_qr_codes
	SET active = FALSE
	WHERE reservation_id = $1 AND active
	`, qr.ReservationID)
	if err != nil {
		return translate(err, "deactivate previous qr")
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO reservation_qr_codes (`+qrColumns+`)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, qr.Token, qr.ReservationID, qr.TenantID, qr.Version, qr.ScanCount, qr.Active, qr.IssuedFor, qr.CreatedAt, qr.ExpiresAt, qr.LastScannedAt)
	if err != nil {
		return translate(err, "insert qr")
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit qr issue: %w", err)
	}

	return nil
}

func (r *QRCodeRepository) GetByToken(ctx context.Context, token string) (*domain.QRCode, error) {
	query := `
	SELECT ` + qrColumns + `
	FROM reservation_qr_codes
	WHERE token = $1
	`

	qr, err := scanQRCode(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, translate(err, "get qr")
	}
	return qr, nil
}

func (r *QRCodeRepository) GetActive(ctx context.Context, reservationID uuid.UUID) (*domain.QRCode, error) {
	query := `
	SELECT ` + qrColumns + `
	FROM reservation_qr_codes
	WHERE reservation_id = $1 AND active
	`

	qr, err := scanQRCode(r.db.QueryRowContext(ctx, query, reservationID))
	if err != nil {
		return nil, translate(err, "get active qr")
	}
	return qr, nil
}

// RecordScan is a single conditional UPDATE, so concurrent scans of one token
// serialize on the row and each sees a distinct previous value.
func (r *QRCodeRepository) RecordScan(ctx context.Context, token string, at time.Time) (int, error) {
	query := `
	UPDATE reservation_qr_codes
	SET scan_count = scan_count + 1,
		last_scanned_at = $2
	WHERE token = $1 AND active AND expires_at > $2
	RETURNING scan_count - 1
	`

	var previous int
	err := r.db.QueryRowContext(ctx, query, token, at).Scan(&previous)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM reservation_qr_codes WHERE token = $1)`, token).Scan(&exists); err != nil {
			return 0, translate(err, "check qr")
		}
		if !exists {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrExpired
	}
	if err != nil {
		return 0, translate(err, "record scan")
	}
	return previous, nil
}

func (r *QRCodeRepository) ScanTallies(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]domain.ScanTally, error) {
	query := `
	SELECT reservation_id, COALESCE(SUM(scan_count), 0), MAX(expires_at) FILTER (WHERE active)
	FROM reservation_qr_codes
	WHERE reservation_id = ANY($1::uuid[])
	GROUP BY reservation_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(uuidStrings(reservationIDs)))
	if err != nil {
		return nil, translate(err, "sum scan counts")
	}

	defer rows.Close()

	tallies := make(map[uuid.UUID]domain.ScanTally, len(reservationIDs))
	for rows.Next() {
		var id uuid.UUID
		var tally domain.ScanTally
		var activeExpiry sql.NullTime
		if err := rows.Scan(&id, &tally.Count, &activeExpiry); err != nil {
			return nil, translate(err, "scan count row")
		}

		if activeExpiry.Valid {
			tally.ActiveExpiry = activeExpiry.Time
		}
		tallies[id] = tally
	}

	return tallies, translate(rows.Err(), "sum scan counts")
}

func (r *QRCodeRepository) PurgeInactive(ctx context.Context, tenantID string, reservedBefore time.Time) (int64, error) {
	query := `
	DELETE FROM reservation_qr_codes q
	USING reservations res
	WHERE q.reservation_id = res.id
		AND NOT q.active
		AND res.reserved_at < $1
		AND ($2 = '' OR q.tenant_id = $2)
	`

	result, err := r.db.ExecContext(ctx, query, reservedBefore, tenantID)
	if err != nil {
		return 0, translate(err, "purge qr codes")
	}
	return result.RowsAffected()
}

func scanQRCode(row rowScanner) (*domain.QRCode, error) {
	var qr domain.QRCode
	var lastScannedAt sql.NullTime

	err := row.Scan(
		&qr.Token,
		&qr.ReservationID,
		&qr.TenantID,
		&qr.Version,
		&qr.ScanCount,
		&qr.Active,
		&qr.IssuedFor,
		&qr.CreatedAt,
		&qr.ExpiresAt,
		&lastScannedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastScannedAt.Valid {
		qr.LastScannedAt = &lastScannedAt.Time
	}

	return &qr, nil
}
