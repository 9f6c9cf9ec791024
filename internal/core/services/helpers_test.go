package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/srgjo27/reservation_engine/internal/adapter/repository/memory"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/services"
	"github.com/stretchr/testify/require"
)

const tenant = "venue-1"

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// engine wires every service over one in-memory store.
type engine struct {
	store        *memory.Store
	clock        *fakeClock
	machine      *services.StateMachine
	issuer       *services.QRIssuer
	reservations *services.ReservationService
	scanner      *services.ScanProcessor
	recorder     *services.HostAttendanceRecorder
	shares       *services.ShareLinkService
	reconciler   *services.ReconciliationService
	maintenance  *services.MaintenanceService
}

func newEngine(t *testing.T, start time.Time) *engine {
	t.Helper()

	store := memory.NewStore()
	clock := &fakeClock{t: start}
	policy := services.StoragePolicy{Timeout: time.Second, RetryDelay: time.Millisecond}
	settings := services.NewTenantSettings(store.TenantSettings(), domain.TenantSettings{
		QRWindow:  domain.DefaultQRWindow,
		Location:  time.UTC,
		ResetHour: domain.DefaultResetHour,
	}, policy)

	e := &engine{store: store, clock: clock}
	e.machine = services.NewStateMachine(store.Reservations(), store.Audit(), store.Snapshots(), policy)
	e.issuer = services.NewQRIssuer(store.Reservations(), store.QRCodes(), store.Snapshots(), settings, policy)
	e.reservations = services.NewReservationService(store.Reservations(), store.QRCodes(), e.issuer, e.machine, settings, policy)
	e.scanner = services.NewScanProcessor(store.QRCodes(), e.machine, policy)
	e.recorder = services.NewHostAttendanceRecorder(store.HostTracking(), store.WalkIns(), e.machine, settings, policy)
	e.shares = services.NewShareLinkService(store.Reservations(), store.QRCodes(), store.ShareLinks(), store.Snapshots(), settings, policy, "https://venue.test")
	e.reconciler = services.NewReconciliationService(store.Reservations(), store.QRCodes(), store.HostTracking(), store.WalkIns(), store.Locks(), e.machine, settings, policy)
	e.maintenance = services.NewMaintenanceService(store.Reservations(), store.QRCodes(), store.HostTracking(), store.ShareLinks(), e.machine, settings, policy)

	e.machine.SetClock(clock.Now)
	e.issuer.SetClock(clock.Now)
	e.reservations.SetClock(clock.Now)
	e.scanner.SetClock(clock.Now)
	e.recorder.SetClock(clock.Now)
	e.shares.SetClock(clock.Now)
	e.reconciler.SetClock(clock.Now)
	e.maintenance.SetClock(clock.Now)
	return e
}

func (e *engine) create(t *testing.T, reservedAt time.Time, guests int, confirmed bool) *services.ReservationDetails {
	t.Helper()

	details, err := e.reservations.Create(context.Background(), domain.CreateReservationInput{
		TenantID:     tenant,
		CustomerName: "Valeria Mora",
		ReservedAt:   reservedAt,
		GuestCount:   guests,
		Confirmed:    confirmed,
	})
	require.NoError(t, err)
	require.NotNil(t, details.QR)
	return details
}

func (e *engine) status(t *testing.T, details *services.ReservationDetails) domain.ReservationStatus {
	t.Helper()

	res, err := e.machine.Load(context.Background(), tenant, details.Reservation.ID)
	require.NoError(t, err)
	return res.Status
}

func (e *engine) scanCount(t *testing.T, token string) int {
	t.Helper()

	qr, err := e.store.QRCodes().GetByToken(context.Background(), token)
	require.NoError(t, err)
	return qr.ScanCount
}

func eventsOf(entries []domain.AuditEntry) []domain.Event {
	out := make([]domain.Event, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Event)
	}
	return out
}

var friday22 = time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)
