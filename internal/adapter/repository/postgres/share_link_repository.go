package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

type ShareLinkRepository struct {
	db *sql.DB
}

func NewShareLinkRepository(db *sql.DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

func (r *ShareLinkRepository) Create(ctx context.Context, link *domain.ShareLink) error {
	query := `
	INSERT INTO share_links (share_id, reservation_id, tenant_id, message, view_count, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, link.ShareID, link.ReservationID, link.TenantID, link.Message, link.ViewCount, link.CreatedAt)
	return translate(err, "insert share link")
}

func (r *ShareLinkRepository) IncrementView(ctx context.Context, shareID string) (*domain.ShareLink, error) {
	query := `
	UPDATE share_links
	SET view_count = view_count + 1
	WHERE share_id = $1
	RETURNING share_id, reservation_id, tenant_id, message, view_count, created_at
	`

	var link domain.ShareLink
	err := r.db.QueryRowContext(ctx, query, shareID).Scan(
		&link.ShareID,
		&link.ReservationID,
		&link.TenantID,
		&link.Message,
		&link.ViewCount,
		&link.CreatedAt,
	)
	if err != nil {
		return nil, translate(err, "increment share view")
	}
	return &link, nil
}

func (r *ShareLinkRepository) PurgeForReservationsBefore(ctx context.Context, tenantID string, reservedBefore time.Time) (int64, error) {
	query := `
	DELETE FROM share_links s
	USING reservations res
	WHERE s.reservation_id = res.id
		AND res.reserved_at < $1
		AND ($2 = '' OR s.tenant_id = $2)
	`

	result, err := r.db.ExecContext(ctx, query, reservedBefore, tenantID)
	if err != nil {
		return 0, translate(err, "purge share links")
	}
	return result.RowsAffected()
}
