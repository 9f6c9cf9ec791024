package domain

import (
	"time"

	"github.com/google/uuid"
)

type ShareLink struct {
	ShareID       string
	ReservationID uuid.UUID
	TenantID      string
	Message       string
	ViewCount     int
	CreatedAt     time.Time
}

// ReservationSnapshot is the read-only projection shown through a share link.
// It never carries scan counts, expiry or activation state of the QR.
type ReservationSnapshot struct {
	ReservationNumber string            `json:"reservation_number"`
	CustomerName      string            `json:"customer_name"`
	GuestCount        int               `json:"guest_count"`
	ReservedAt        time.Time         `json:"reserved_at"`
	BusinessDay       string            `json:"business_day"`
	Status            ReservationStatus `json:"status"`
	Details           string            `json:"details,omitempty"`
	QRPayload         string            `json:"-"`
	QRImagePNG        []byte            `json:"qr_png,omitempty"`
}

type ShareView struct {
	ShareID   string              `json:"share_id"`
	Message   string              `json:"message,omitempty"`
	ViewCount int                 `json:"view_count"`
	Snapshot  ReservationSnapshot `json:"reservation"`
}
