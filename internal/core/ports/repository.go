package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	NextSequence(ctx context.Context, tenantID string, day domain.BusinessDay) (int, error)
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Reservation, error)
	// TransitionStatus is a compare-and-set on status; ErrConflict when the
	// stored status is no longer from. Moving to CHECKED_IN stamps
	// checked_in_at once.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.ReservationStatus, at time.Time) error
	Reschedule(ctx context.Context, id uuid.UUID, oldReservedAt, newReservedAt, at time.Time) error
	ListInWindow(ctx context.Context, tenantID string, start, end time.Time) ([]domain.Reservation, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Reservation, error)
	// ActiveTenants lists tenants with at least one reservation scheduled at or
	// after since.
	ActiveTenants(ctx context.Context, since time.Time) ([]string, error)
}

type QRCodeRepository interface {
	// Issue deactivates any active token of the reservation and stores qr as
	// the only active one, atomically.
	Issue(ctx context.Context, qr *domain.QRCode) error
	GetByToken(ctx context.Context, token string) (*domain.QRCode, error)
	GetActive(ctx context.Context, reservationID uuid.UUID) (*domain.QRCode, error)
	// RecordScan increments the scan counter in a single storage operation and
	// returns the value it held before. ErrExpired when the token is inactive
	// or past expiry at the given instant.
	RecordScan(ctx context.Context, token string, at time.Time) (int, error)
	// ScanTallies sums the counters of every version issued to each reservation
	// and reports the expiry of its active version.
	ScanTallies(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]domain.ScanTally, error)
	// PurgeInactive removes deactivated versions of reservations scheduled
	// before the cutoff. An empty tenantID covers every tenant.
	PurgeInactive(ctx context.Context, tenantID string, reservedBefore time.Time) (int64, error)
}

type HostTrackingRepository interface {
	Upsert(ctx context.Context, tracking *domain.HostTracking) error
	Get(ctx context.Context, reservationID uuid.UUID) (*domain.HostTracking, error)
	ListByReservations(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]domain.HostTracking, error)
}

type ShareLinkRepository interface {
	Create(ctx context.Context, link *domain.ShareLink) error
	// IncrementView bumps the view counter and returns the updated link.
	IncrementView(ctx context.Context, shareID string) (*domain.ShareLink, error)
	// PurgeForReservationsBefore removes links of reservations scheduled before
	// the cutoff. An empty tenantID covers every tenant.
	PurgeForReservationsBefore(ctx context.Context, tenantID string, reservedBefore time.Time) (int64, error)
}

type TenantSettingsRepository interface {
	Get(ctx context.Context, tenantID string) (domain.TenantSettings, error)
}

// WalkInFeed exposes headcounts of guests who arrived without a reservation.
type WalkInFeed interface {
	TotalForDays(ctx context.Context, tenantID string, days []domain.BusinessDay) (int, error)
}

type WalkInLedger interface {
	WalkInFeed
	Add(ctx context.Context, tenantID string, day domain.BusinessDay, guests int, at time.Time) error
}

type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

type WindowLocker interface {
	// Acquire fails with ErrConflict while another holder owns key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

type SnapshotCache interface {
	Get(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationSnapshot, bool, error)
	Set(ctx context.Context, reservationID uuid.UUID, snapshot *domain.ReservationSnapshot, ttl time.Duration) error
	Invalidate(ctx context.Context, reservationID uuid.UUID) error
}

// StaffResolver turns a bearer credential into a staff identity.
type StaffResolver interface {
	Resolve(ctx context.Context, bearer string) (domain.StaffIdentity, error)
}
