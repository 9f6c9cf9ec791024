package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

const agingBatchSize = 500

type PurgeResult struct {
	ShareLinks int64 `json:"share_links"`
	QRCodes    int64 `json:"qr_codes"`
}

// MaintenanceService runs the housekeeping jobs: aging never-confirmed
// reservations and the retention purge.
type MaintenanceService struct {
	reservations ports.ReservationRepository
	codes        ports.QRCodeRepository
	tracking     ports.HostTrackingRepository
	links        ports.ShareLinkRepository
	machine      *StateMachine
	settings     *TenantSettings
	policy       StoragePolicy
	now          func() time.Time
}

func NewMaintenanceService(
	reservations ports.ReservationRepository,
	codes ports.QRCodeRepository,
	tracking ports.HostTrackingRepository,
	links ports.ShareLinkRepository,
	machine *StateMachine,
	settings *TenantSettings,
	policy StoragePolicy,
) *MaintenanceService {
	return &MaintenanceService{
		reservations: reservations,
		codes:        codes,
		tracking:     tracking,
		links:        links,
		machine:      machine,
		settings:     settings,
		policy:       policy,
		now:          time.Now,
	}
}

func (m *MaintenanceService) SetClock(now func() time.Time) {
	m.now = now
}

// DropStale moves PENDING reservations to DROPPED once their window has
// closed without a scan or a host record.
func (m *MaintenanceService) DropStale(ctx context.Context) (int, error) {
	now := m.now()
	pending, err := call(ctx, m.policy, func(ctx context.Context) ([]domain.Reservation, error) {
		return m.reservations.ListPendingBefore(ctx, now, agingBatchSize)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list pending reservations: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(pending))
	for _, res := range pending {
		ids = append(ids, res.ID)
	}
	scans, err := call(ctx, m.policy, func(ctx context.Context) (map[uuid.UUID]domain.ScanTally, error) {
		return m.codes.ScanTallies(ctx, ids)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load scan counts: %w", err)
	}
	hosts, err := call(ctx, m.policy, func(ctx context.Context) (map[uuid.UUID]domain.HostTracking, error) {
		return m.tracking.ListByReservations(ctx, ids)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load host tracking: %w", err)
	}

	dropped := 0
	for i := range pending {
		res := &pending[i]
		tally := scans[res.ID]
		if tally.Count > 0 {
			continue
		}
		if _, ok := hosts[res.ID]; ok {
			continue
		}
		settings, err := m.settings.For(ctx, res.TenantID)
		if err != nil {
			log.Printf("level=warn msg=\"aging skipped reservation\" reservation=%s err=%v", res.ID, err)
			continue
		}
		if !tally.WindowClosed(res, settings.Window(), now) {
			continue
		}

		result, err := m.machine.ApplyTo(ctx, res, domain.EventAgedOut, domain.ActorAging, "never confirmed, window closed")
		if err != nil {
			log.Printf("level=warn msg=\"failed to drop reservation\" reservation=%s err=%v", res.ID, err)
			continue
		}
		if result.Changed {
			dropped++
		}
	}

	if dropped > 0 {
		log.Printf("level=info msg=\"stale reservations dropped\" count=%d", dropped)
	}
	return dropped, nil
}

// Purge deletes share links and superseded codes of reservations scheduled
// before the cutoff. Reservation rows are kept. An empty tenantID purges all
// tenants.
func (m *MaintenanceService) Purge(ctx context.Context, tenantID string, before time.Time) (PurgeResult, error) {
	if before.IsZero() || before.After(m.now()) {
		return PurgeResult{}, domain.Validationf("purge cutoff must be in the past")
	}

	var result PurgeResult
	links, err := call(ctx, m.policy, func(ctx context.Context) (int64, error) {
		return m.links.PurgeForReservationsBefore(ctx, tenantID, before)
	})
	if err != nil {
		return result, fmt.Errorf("failed to purge share links: %w", err)
	}
	result.ShareLinks = links

	codes, err := call(ctx, m.policy, func(ctx context.Context) (int64, error) {
		return m.codes.PurgeInactive(ctx, tenantID, before)
	})
	if err != nil {
		return result, fmt.Errorf("failed to purge qr codes: %w", err)
	}
	result.QRCodes = codes

	log.Printf("level=info msg=\"retention purge finished\" tenant=%q before=%s share_links=%d qr_codes=%d",
		tenantID, before.Format(time.RFC3339), result.ShareLinks, result.QRCodes)
	return result, nil
}
