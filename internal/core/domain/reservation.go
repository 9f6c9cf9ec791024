package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCheckedIn ReservationStatus = "CHECKED_IN"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
	ReservationDropped   ReservationStatus = "DROPPED"
)

var allStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationCheckedIn,
	ReservationCompleted,
	ReservationCancelled,
	ReservationNoShow,
	ReservationDropped,
}

// ParseStatus rejects anything outside the closed status set.
func ParseStatus(raw string) (ReservationStatus, error) {
	for _, s := range allStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", validationf("unknown reservation status %q", raw)
}

func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationCompleted, ReservationCancelled, ReservationNoShow, ReservationDropped:
		return true
	}
	return false
}

// AwaitingArrival reports whether the guest has not been admitted yet.
func (s ReservationStatus) AwaitingArrival() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type Reservation struct {
	ID            uuid.UUID
	Number        string
	TenantID      string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ReservedAt    time.Time
	GuestCount    int
	Details       string
	PromoterID    string
	Source        string
	Status        ReservationStatus
	CheckedInAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Reservation) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// QRExpiry is the instant the reservation's check-in window closes.
func (r *Reservation) QRExpiry(window time.Duration) time.Time {
	return r.ReservedAt.Add(window)
}

// WindowClosed reports whether no further scans can arrive for the reservation.
func (r *Reservation) WindowClosed(window time.Duration, now time.Time) bool {
	return !now.Before(r.QRExpiry(window))
}

type CreateReservationInput struct {
	TenantID      string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ReservedAt    time.Time
	GuestCount    int
	Details       string
	PromoterID    string
	Source        string
	Confirmed     bool
}

func (in CreateReservationInput) Validate() error {
	if in.TenantID == "" {
		return validationf("tenant id is required")
	}
	if in.CustomerName == "" {
		return validationf("customer name is required")
	}
	if in.ReservedAt.IsZero() {
		return validationf("reserved_at is required")
	}
	if in.GuestCount <= 0 {
		return validationf("guest count must be greater than 0")
	}
	return nil
}

// HostTracking is the staff-entered headcount for a reservation.
type HostTracking struct {
	ReservationID uuid.UUID
	TenantID      string
	ObservedCount int
	StaffID       string
	RecordedAt    time.Time
}
