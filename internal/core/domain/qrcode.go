package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultQRWindow = 12 * time.Hour

// QRCode is one issued version of a reservation's check-in token. IssuedFor
// is the reservedAt value the version was computed from.
type QRCode struct {
	Token         string
	ReservationID uuid.UUID
	TenantID      string
	Version       int
	ScanCount     int
	Active        bool
	IssuedFor     time.Time
	CreatedAt     time.Time
	ExpiresAt     time.Time
	LastScannedAt *time.Time
}

// Usable reports whether a scan at now may be counted. Expiry is exclusive:
// a scan at exactly ExpiresAt is already late.
func (q *QRCode) Usable(now time.Time) bool {
	return q.Active && now.Before(q.ExpiresAt)
}

// ScanTally aggregates the QR versions issued to one reservation. ActiveExpiry
// is zero when no active version exists.
type ScanTally struct {
	Count        int
	ActiveExpiry time.Time
}

// WindowClosed reports whether no further scans can arrive. The expiry stamped
// on the active code wins over the tenant's current window, which may have
// changed since issuance.
func (t ScanTally) WindowClosed(res *Reservation, window time.Duration, now time.Time) bool {
	if t.ActiveExpiry.IsZero() {
		return res.WindowClosed(window, now)
	}
	return !now.Before(t.ActiveExpiry)
}

type ScanOutcome string

const (
	ScanCheckedInFirst   ScanOutcome = "CHECKED_IN_FIRST"
	ScanAlreadyCheckedIn ScanOutcome = "ALREADY_CHECKED_IN"
	ScanExpired          ScanOutcome = "EXPIRED"
	ScanInvalid          ScanOutcome = "INVALID"
	ScanRejected         ScanOutcome = "REJECTED"
	ScanTimeout          ScanOutcome = "TIMEOUT"
)

// GuestSummary is the customer-facing part of a scan answer.
type GuestSummary struct {
	CustomerName string     `json:"customer_name"`
	GuestCount   int        `json:"guest_count"`
	ReservedAt   time.Time  `json:"reserved_at"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
}

type ScanResult struct {
	Outcome   ScanOutcome
	ScanCount int
	Guest     *GuestSummary
}

// Public hides the difference between unknown and expired tokens, and keeps
// guest details of rejected reservations from anonymous scanners.
func (r ScanResult) Public() ScanResult {
	switch r.Outcome {
	case ScanInvalid, ScanExpired:
		return ScanResult{Outcome: ScanInvalid}
	case ScanRejected:
		return ScanResult{Outcome: ScanRejected}
	}
	return r
}
