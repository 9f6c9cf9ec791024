package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

type HostAttendanceRecorder struct {
	tracking ports.HostTrackingRepository
	walkIns  ports.WalkInLedger
	machine  *StateMachine
	settings *TenantSettings
	policy   StoragePolicy
	now      func() time.Time
}

func NewHostAttendanceRecorder(tracking ports.HostTrackingRepository, walkIns ports.WalkInLedger, machine *StateMachine, settings *TenantSettings, policy StoragePolicy) *HostAttendanceRecorder {
	return &HostAttendanceRecorder{
		tracking: tracking,
		walkIns:  walkIns,
		machine:  machine,
		settings: settings,
		policy:   policy,
		now:      time.Now,
	}
}

func (h *HostAttendanceRecorder) SetClock(now func() time.Time) {
	h.now = now
}

// RecordAttendance stores the staff headcount for a reservation in any status.
// A positive count admits a reservation that is still awaiting arrival; a zero
// count is left for reconciliation once the window has closed.
func (h *HostAttendanceRecorder) RecordAttendance(ctx context.Context, tenantID string, reservationID uuid.UUID, observedCount int, staffID string) error {
	if observedCount < 0 {
		return domain.Validationf("observed count must not be negative")
	}
	if strings.TrimSpace(staffID) == "" {
		return domain.Validationf("staff id is required")
	}

	res, err := h.machine.Load(ctx, tenantID, reservationID)
	if err != nil {
		return err
	}

	record := &domain.HostTracking{
		ReservationID: res.ID,
		TenantID:      res.TenantID,
		ObservedCount: observedCount,
		StaffID:       staffID,
		RecordedAt:    h.now().UTC(),
	}
	if err := exec(ctx, h.policy, func(ctx context.Context) error {
		return h.tracking.Upsert(ctx, record)
	}); err != nil {
		return fmt.Errorf("failed to save host tracking: %w", err)
	}
	log.Printf("level=info msg=\"host attendance recorded\" reservation=%s count=%d staff=%s", res.ID, observedCount, staffID)

	if observedCount == 0 || !res.Status.AwaitingArrival() {
		return nil
	}

	_, err = h.machine.ApplyTo(ctx, res, domain.EventHostArrived, "staff:"+staffID, fmt.Sprintf("host counted %d guests", observedCount))
	if errors.Is(err, domain.ErrConflict) {
		// Status moved under us, most likely a concurrent first scan.
		return nil
	}
	return err
}

// RecordWalkIn adds guests admitted without a reservation to the ledger of the
// business day containing at. They never touch reservation status.
func (h *HostAttendanceRecorder) RecordWalkIn(ctx context.Context, tenantID string, guests int, at time.Time) (domain.BusinessDay, error) {
	if guests <= 0 {
		return domain.BusinessDay{}, domain.Validationf("guests must be greater than 0")
	}
	if at.IsZero() {
		at = h.now()
	}

	settings, err := h.settings.For(ctx, tenantID)
	if err != nil {
		return domain.BusinessDay{}, err
	}
	day := settings.Resolver().DayOf(at)

	if err := exec(ctx, h.policy, func(ctx context.Context) error {
		return h.walkIns.Add(ctx, tenantID, day, guests, at.UTC())
	}); err != nil {
		return domain.BusinessDay{}, fmt.Errorf("failed to record walk-in: %w", err)
	}
	log.Printf("level=info msg=\"walk-in recorded\" tenant=%s day=%s guests=%d", tenantID, day, guests)
	return day, nil
}
