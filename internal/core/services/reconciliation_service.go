package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reconcileLockTTL = 10 * time.Minute

type AttendanceTotals struct {
	Scans   int `json:"scans"`
	Host    int `json:"host"`
	WalkIns int `json:"walk_ins"`
	Total   int `json:"total"`
}

// AttendanceBreakdown classifies reservations by how many guests showed up
// compared with the expected count.
type AttendanceBreakdown struct {
	Full      int `json:"full"`
	Over      int `json:"over"`
	Partial   int `json:"partial"`
	Missed    int `json:"missed"`
	Cancelled int `json:"cancelled"`
}

type ReconcileSummary struct {
	TenantID    string              `json:"tenant_id"`
	WindowStart time.Time           `json:"window_start"`
	WindowEnd   time.Time           `json:"window_end"`
	Reconciled  int                 `json:"reconciled"`
	NoShow      int                 `json:"no_show"`
	CheckedIn   int                 `json:"checked_in"`
	Unchanged   int                 `json:"unchanged"`
	Skipped     int                 `json:"skipped"`
	Failed      int                 `json:"failed"`
	Attendance  AttendanceTotals    `json:"attendance"`
	Breakdown   AttendanceBreakdown `json:"breakdown"`
}

type reconcileOutcome int

const (
	outcomeUnchanged reconcileOutcome = iota
	outcomeNoShow
	outcomeCheckedIn
	outcomeSkipped
)

type ReconciliationService struct {
	reservations ports.ReservationRepository
	codes        ports.QRCodeRepository
	tracking     ports.HostTrackingRepository
	walkIns      ports.WalkInFeed
	locker       ports.WindowLocker
	machine      *StateMachine
	settings     *TenantSettings
	policy       StoragePolicy
	now          func() time.Time
	tracer       trace.Tracer
}

func NewReconciliationService(
	reservations ports.ReservationRepository,
	codes ports.QRCodeRepository,
	tracking ports.HostTrackingRepository,
	walkIns ports.WalkInFeed,
	locker ports.WindowLocker,
	machine *StateMachine,
	settings *TenantSettings,
	policy StoragePolicy,
) *ReconciliationService {
	return &ReconciliationService{
		reservations: reservations,
		codes:        codes,
		tracking:     tracking,
		walkIns:      walkIns,
		locker:       locker,
		machine:      machine,
		settings:     settings,
		policy:       policy,
		now:          time.Now,
		tracer:       otel.Tracer("reservation_engine/reconciliation"),
	}
}

func (r *ReconciliationService) SetClock(now func() time.Time) {
	r.now = now
}

func (r *ReconciliationService) ReconcileDay(ctx context.Context, tenantID string, day domain.BusinessDay) (*ReconcileSummary, error) {
	settings, err := r.settings.For(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	start, end := settings.Resolver().Bounds(day)
	return r.Reconcile(ctx, tenantID, start, end)
}

// Reconcile corrects the status of every reservation scheduled in
// [windowStart, windowEnd) whose check-in window has closed, then totals the
// period's attendance. Running it again on the same window changes nothing.
func (r *ReconciliationService) Reconcile(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) (*ReconcileSummary, error) {
	if tenantID == "" {
		return nil, domain.Validationf("tenant id is required")
	}
	if !windowEnd.After(windowStart) {
		return nil, domain.Validationf("window end must be after window start")
	}

	ctx, span := r.tracer.Start(ctx, "ReconciliationService.Reconcile", trace.WithAttributes(
		attribute.String("tenant.id", tenantID),
		attribute.String("window.start", windowStart.UTC().Format(time.RFC3339)),
		attribute.String("window.end", windowEnd.UTC().Format(time.RFC3339)),
	))
	defer span.End()

	if r.locker != nil {
		key := fmt.Sprintf("reconcile:%s:%d:%d", tenantID, windowStart.Unix(), windowEnd.Unix())
		release, err := r.locker.Acquire(ctx, key, reconcileLockTTL)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Printf("level=warn msg=\"failed to release reconcile lock\" key=%s err=%v", key, err)
			}
		}()
	}

	summary, err := r.reconcile(ctx, tenantID, windowStart, windowEnd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("reconcile.no_show", summary.NoShow),
		attribute.Int("reconcile.checked_in", summary.CheckedIn),
		attribute.Int("reconcile.failed", summary.Failed),
	)
	log.Printf("level=info msg=\"reconciliation finished\" tenant=%s reconciled=%d no_show=%d checked_in=%d skipped=%d failed=%d attendance=%d",
		tenantID, summary.Reconciled, summary.NoShow, summary.CheckedIn, summary.Skipped, summary.Failed, summary.Attendance.Total)
	return summary, nil
}

func (r *ReconciliationService) reconcile(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) (*ReconcileSummary, error) {
	settings, err := r.settings.For(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	window := settings.Window()
	now := r.now()

	reservations, err := call(ctx, r.policy, func(ctx context.Context) ([]domain.Reservation, error) {
		return r.reservations.ListInWindow(ctx, tenantID, windowStart, windowEnd)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(reservations))
	for _, res := range reservations {
		ids = append(ids, res.ID)
	}

	scans := map[uuid.UUID]domain.ScanTally{}
	hosts := map[uuid.UUID]domain.HostTracking{}
	if len(ids) > 0 {
		if scans, err = call(ctx, r.policy, func(ctx context.Context) (map[uuid.UUID]domain.ScanTally, error) {
			return r.codes.ScanTallies(ctx, ids)
		}); err != nil {
			return nil, fmt.Errorf("failed to load scan counts: %w", err)
		}
		if hosts, err = call(ctx, r.policy, func(ctx context.Context) (map[uuid.UUID]domain.HostTracking, error) {
			return r.tracking.ListByReservations(ctx, ids)
		}); err != nil {
			return nil, fmt.Errorf("failed to load host tracking: %w", err)
		}
	}

	summary := &ReconcileSummary{TenantID: tenantID, WindowStart: windowStart, WindowEnd: windowEnd}

	for i := range reservations {
		res := &reservations[i]
		host, hasHost := hosts[res.ID]
		tally := scans[res.ID]
		scanCount := tally.Count

		if !res.IsTerminal() {
			if !tally.WindowClosed(res, window, now) {
				summary.Skipped++
			} else {
				outcome, err := r.correct(ctx, res, host, hasHost, scanCount)
				if err != nil {
					summary.Failed++
					log.Printf("level=warn msg=\"reconcile reservation failed\" reservation=%s err=%v", res.ID, err)
				} else {
					summary.tally(outcome)
				}
			}
		}

		attended := scanCount
		if hasHost {
			attended = host.ObservedCount
			summary.Attendance.Host += host.ObservedCount
		} else {
			summary.Attendance.Scans += scanCount
		}
		summary.Breakdown.classify(res, attended)
	}

	if r.walkIns != nil {
		days := settings.Resolver().Days(windowStart, windowEnd)
		walkIns, err := call(ctx, r.policy, func(ctx context.Context) (int, error) {
			return r.walkIns.TotalForDays(ctx, tenantID, days)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load walk-ins: %w", err)
		}
		summary.Attendance.WalkIns = walkIns
	}
	summary.Attendance.Total = summary.Attendance.Scans + summary.Attendance.Host + summary.Attendance.WalkIns

	return summary, nil
}

// correct applies the signal precedence: a host record outranks scans.
func (r *ReconciliationService) correct(ctx context.Context, res *domain.Reservation, host domain.HostTracking, hasHost bool, scans int) (reconcileOutcome, error) {
	var event domain.Event
	var reason string

	switch {
	case hasHost && host.ObservedCount > 0:
		event, reason = domain.EventHostArrived, fmt.Sprintf("host counted %d guests", host.ObservedCount)
	case hasHost && res.Status.AwaitingArrival():
		event, reason = domain.EventPeriodNoShow, "host counted 0 guests"
	case hasHost:
		log.Printf("level=warn msg=\"host counted 0 for a checked-in reservation\" reservation=%s", res.ID)
		return outcomeSkipped, nil
	case scans == 0 && res.Status.AwaitingArrival():
		event, reason = domain.EventPeriodNoShow, "no scans and no host record"
	case scans > 0 && res.Status.AwaitingArrival():
		event, reason = domain.EventScanned, fmt.Sprintf("scanned %d times without status change", scans)
	default:
		return outcomeUnchanged, nil
	}

	result, err := r.machine.ApplyTo(ctx, res, event, domain.ActorReconciliation, reason)
	if err != nil {
		return outcomeUnchanged, err
	}
	if !result.Changed {
		return outcomeUnchanged, nil
	}
	if result.To == domain.ReservationNoShow {
		return outcomeNoShow, nil
	}
	return outcomeCheckedIn, nil
}

func (s *ReconcileSummary) tally(outcome reconcileOutcome) {
	switch outcome {
	case outcomeSkipped:
		s.Skipped++
		return
	case outcomeNoShow:
		s.NoShow++
	case outcomeCheckedIn:
		s.CheckedIn++
	default:
		s.Unchanged++
	}
	s.Reconciled++
}

func (b *AttendanceBreakdown) classify(res *domain.Reservation, attended int) {
	switch {
	case res.Status == domain.ReservationCancelled || res.Status == domain.ReservationDropped:
		b.Cancelled++
	case attended == 0:
		b.Missed++
	case attended == res.GuestCount:
		b.Full++
	case attended > res.GuestCount:
		b.Over++
	default:
		b.Partial++
	}
}

// ReconcileRecent reconciles the business days that closed most recently for
// every tenant with reservations in that range. One tenant failing does not
// stop the others.
func (r *ReconciliationService) ReconcileRecent(ctx context.Context) ([]*ReconcileSummary, error) {
	now := r.now()
	tenants, err := call(ctx, r.policy, func(ctx context.Context) ([]string, error) {
		return r.reservations.ActiveTenants(ctx, now.Add(-7*24*time.Hour))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	var summaries []*ReconcileSummary
	for _, tenantID := range tenants {
		settings, err := r.settings.For(ctx, tenantID)
		if err != nil {
			log.Printf("level=warn msg=\"skipping tenant\" tenant=%s err=%v", tenantID, err)
			continue
		}
		today := settings.Resolver().DayOf(now)
		// Reservations late in a business day stay scannable into the next one.
		lookback := int(settings.Window()/(24*time.Hour)) + 2
		for back := lookback; back >= 1; back-- {
			summary, err := r.ReconcileDay(ctx, tenantID, today.AddDays(-back))
			if errors.Is(err, domain.ErrConflict) {
				log.Printf("level=info msg=\"reconciliation already running\" tenant=%s", tenantID)
				continue
			}
			if err != nil {
				log.Printf("level=warn msg=\"reconciliation failed\" tenant=%s err=%v", tenantID, err)
				continue
			}
			summaries = append(summaries, summary)
		}
	}
	return summaries, nil
}
