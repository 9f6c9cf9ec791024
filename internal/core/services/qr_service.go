package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

// tokenBytes of entropy encode to a fixed 43 character URL-safe token.
const tokenBytes = 32

func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type QRIssuer struct {
	reservations ports.ReservationRepository
	codes        ports.QRCodeRepository
	cache        ports.SnapshotCache
	settings     *TenantSettings
	policy       StoragePolicy
	now          func() time.Time
}

func NewQRIssuer(reservations ports.ReservationRepository, codes ports.QRCodeRepository, cache ports.SnapshotCache, settings *TenantSettings, policy StoragePolicy) *QRIssuer {
	return &QRIssuer{
		reservations: reservations,
		codes:        codes,
		cache:        cache,
		settings:     settings,
		policy:       policy,
		now:          time.Now,
	}
}

func (q *QRIssuer) SetClock(now func() time.Time) {
	q.now = now
}

func (q *QRIssuer) Issue(ctx context.Context, tenantID string, reservationID uuid.UUID) (*domain.QRCode, error) {
	res, err := call(ctx, q.policy, func(ctx context.Context) (*domain.Reservation, error) {
		return q.reservations.GetByID(ctx, tenantID, reservationID)
	})
	if err != nil {
		return nil, err
	}
	return q.IssueFor(ctx, res)
}

// IssueFor returns the reservation's active token, issuing a new version when
// none exists or when the active one was computed for an older reservedAt.
// Superseded versions are deactivated, not deleted.
func (q *QRIssuer) IssueFor(ctx context.Context, res *domain.Reservation) (*domain.QRCode, error) {
	if res.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationTerminal, res.Status)
	}

	active, err := call(ctx, q.policy, func(ctx context.Context) (*domain.QRCode, error) {
		return q.codes.GetActive(ctx, res.ID)
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if active != nil && active.IssuedFor.Equal(res.ReservedAt) {
		return active, nil
	}

	settings, err := q.settings.For(ctx, res.TenantID)
	if err != nil {
		return nil, err
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	version := 1
	if active != nil {
		version = active.Version + 1
	}

	qr := &domain.QRCode{
		Token:         token,
		ReservationID: res.ID,
		TenantID:      res.TenantID,
		Version:       version,
		Active:        true,
		IssuedFor:     res.ReservedAt,
		CreatedAt:     q.now().UTC(),
		ExpiresAt:     res.QRExpiry(settings.Window()),
	}

	if err := exec(ctx, q.policy, func(ctx context.Context) error {
		return q.codes.Issue(ctx, qr)
	}); err != nil {
		return nil, err
	}

	if q.cache != nil {
		if err := q.cache.Invalidate(ctx, res.ID); err != nil {
			log.Printf("level=warn msg=\"snapshot invalidation failed\" reservation=%s err=%v", res.ID, err)
		}
	}

	log.Printf("level=info msg=\"qr issued\" reservation=%s version=%d expires_at=%s", res.ID, qr.Version, qr.ExpiresAt.Format(time.RFC3339))
	return qr, nil
}
