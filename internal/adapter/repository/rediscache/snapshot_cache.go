package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

// cachedSnapshot mirrors domain.ReservationSnapshot but keeps the QR payload,
// which the domain type hides from JSON responses.
type cachedSnapshot struct {
	ReservationNumber string                   `json:"reservation_number"`
	CustomerName      string                   `json:"customer_name"`
	GuestCount        int                      `json:"guest_count"`
	ReservedAt        time.Time                `json:"reserved_at"`
	BusinessDay       string                   `json:"business_day"`
	Status            domain.ReservationStatus `json:"status"`
	Details           string                   `json:"details,omitempty"`
	QRPayload         string                   `json:"qr_payload,omitempty"`
}

type SnapshotCache struct {
	rdb *redis.Client
}

func NewSnapshotCache(rdb *redis.Client) *SnapshotCache {
	return &SnapshotCache{rdb: rdb}
}

func SnapshotKey(reservationID uuid.UUID) string {
	return fmt.Sprintf("share:snapshot:%s", reservationID)
}

func (c *SnapshotCache) Get(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationSnapshot, bool, error) {
	raw, err := c.rdb.Get(ctx, SnapshotKey(reservationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cached cachedSnapshot
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("corrupt snapshot for %s: %w", reservationID, err)
	}

	return &domain.ReservationSnapshot{
		ReservationNumber: cached.ReservationNumber,
		CustomerName:      cached.CustomerName,
		GuestCount:        cached.GuestCount,
		ReservedAt:        cached.ReservedAt,
		BusinessDay:       cached.BusinessDay,
		Status:            cached.Status,
		Details:           cached.Details,
		QRPayload:         cached.QRPayload,
	}, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, reservationID uuid.UUID, s *domain.ReservationSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(cachedSnapshot{
		ReservationNumber: s.ReservationNumber,
		CustomerName:      s.CustomerName,
		GuestCount:        s.GuestCount,
		ReservedAt:        s.ReservedAt,
		BusinessDay:       s.BusinessDay,
		Status:            s.Status,
		Details:           s.Details,
		QRPayload:         s.QRPayload,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, SnapshotKey(reservationID), raw, ttl).Err()
}

func (c *SnapshotCache) Invalidate(ctx context.Context, reservationID uuid.UUID) error {
	return c.rdb.Del(ctx, SnapshotKey(reservationID)).Err()
}
