package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports/mocks"
	"github.com/srgjo27/reservation_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScan_FirstScanBeforeExpiryChecksIn(t *testing.T) {
	e := newEngine(t, friday22.Add(-4*time.Hour))
	details := e.create(t, friday22, 4, false)
	assert.Equal(t, time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), details.QR.ExpiresAt)

	e.clock.Set(time.Date(2024, 3, 16, 9, 59, 59, 0, time.UTC))
	result, err := e.scanner.Scan(context.Background(), details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanCheckedInFirst, result.Outcome)
	assert.Equal(t, 1, result.ScanCount)
	require.NotNil(t, result.Guest)
	assert.Equal(t, "Valeria Mora", result.Guest.CustomerName)
	assert.Equal(t, domain.ReservationCheckedIn, e.status(t, details))

	entries := e.store.Audit().Entries(details.Reservation.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EventScanned, entries[0].Event)
	assert.Equal(t, domain.ActorSystemScan, entries[0].Actor)
	assert.Equal(t, domain.ReservationPending, entries[0].FromStatus)
}

func TestScan_AfterExpiryIsNotCounted(t *testing.T) {
	e := newEngine(t, friday22.Add(-4*time.Hour))
	details := e.create(t, friday22, 4, true)

	e.clock.Set(time.Date(2024, 3, 16, 10, 0, 1, 0, time.UTC))
	result, err := e.scanner.Scan(context.Background(), details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanExpired, result.Outcome)
	assert.Equal(t, 0, e.scanCount(t, details.QR.Token))
	assert.Equal(t, domain.ReservationConfirmed, e.status(t, details))
}

func TestScan_AtExactExpiryIsExpired(t *testing.T) {
	e := newEngine(t, friday22.Add(-4*time.Hour))
	details := e.create(t, friday22, 2, true)

	e.clock.Set(details.QR.ExpiresAt)
	result, err := e.scanner.Scan(context.Background(), details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanExpired, result.Outcome)
}

func TestScan_RepeatScansAreCounted(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 3, true)

	first, err := e.scanner.Scan(context.Background(), details.QR.Token)
	require.NoError(t, err)
	second, err := e.scanner.Scan(context.Background(), details.QR.Token)
	require.NoError(t, err)
	third, err := e.scanner.Scan(context.Background(), details.QR.Token)
	require.NoError(t, err)

	assert.Equal(t, domain.ScanCheckedInFirst, first.Outcome)
	assert.Equal(t, domain.ScanAlreadyCheckedIn, second.Outcome)
	assert.Equal(t, 2, second.ScanCount)
	assert.Equal(t, domain.ScanAlreadyCheckedIn, third.Outcome)
	assert.Equal(t, 3, third.ScanCount)
	assert.Len(t, e.store.Audit().Entries(details.Reservation.ID), 1)
}

func TestScan_UnknownAndEmptyTokens(t *testing.T) {
	e := newEngine(t, friday22)

	result, err := e.scanner.Scan(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Equal(t, domain.ScanInvalid, result.Outcome)

	result, err = e.scanner.Scan(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, domain.ScanInvalid, result.Outcome)
}

func TestScan_CancelledReservationIsRejected(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)

	_, err := e.reservations.Act(context.Background(), tenant, details.Reservation.ID, "cancel", "staff:maria", "guest called")
	require.NoError(t, err)

	result, err := e.scanner.Scan(context.Background(), details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanRejected, result.Outcome)
	assert.Equal(t, 0, e.scanCount(t, details.QR.Token))
	assert.Equal(t, domain.ReservationCancelled, e.status(t, details))
}

func TestScan_CompletedReservationReportsAlreadyCheckedIn(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)

	_, err := e.scanner.Scan(context.Background(), details.QR.Token)
	require.NoError(t, err)
	_, err = e.reservations.Act(context.Background(), tenant, details.Reservation.ID, "complete", "staff:maria", "")
	require.NoError(t, err)

	result, err := e.scanner.Scan(context.Background(), details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanAlreadyCheckedIn, result.Outcome)
	assert.Equal(t, 2, result.ScanCount)
	assert.Equal(t, domain.ReservationCompleted, e.status(t, details))
}

func TestScan_SupersededTokenIsExpired(t *testing.T) {
	e := newEngine(t, friday22.Add(-2*time.Hour))
	details := e.create(t, friday22, 2, true)

	moved, err := e.reservations.Reschedule(context.Background(), tenant, details.Reservation.ID, friday22.Add(time.Hour), "staff:maria", "late table")
	require.NoError(t, err)
	require.NotEqual(t, details.QR.Token, moved.QR.Token)

	old, err := e.scanner.Scan(context.Background(), details.QR.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.ScanExpired, old.Outcome)

	current, err := e.scanner.Scan(context.Background(), moved.QR.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.ScanCheckedInFirst, current.Outcome)
}

func TestScanForTenant_OtherVenueIsInvalid(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)

	result, err := e.scanner.ScanForTenant(context.Background(), "venue-2", details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanInvalid, result.Outcome)
	assert.Equal(t, 0, e.scanCount(t, details.QR.Token))
}

func TestScan_ConcurrentScansCheckInOnce(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 6, false)

	const scans = 50
	outcomes := make([]domain.ScanOutcome, scans)
	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := e.scanner.Scan(context.Background(), details.QR.Token)
			assert.NoError(t, err)
			outcomes[i] = result.Outcome
		}(i)
	}
	wg.Wait()

	first := 0
	for _, outcome := range outcomes {
		if outcome == domain.ScanCheckedInFirst {
			first++
		} else {
			assert.Equal(t, domain.ScanAlreadyCheckedIn, outcome)
		}
	}
	assert.Equal(t, 1, first)
	assert.Equal(t, scans, e.scanCount(t, details.QR.Token))
	assert.Equal(t, domain.ReservationCheckedIn, e.status(t, details))
	assert.Equal(t, []domain.Event{domain.EventScanned}, eventsOf(e.store.Audit().Entries(details.Reservation.ID)))
}

func TestScan_CheckInTimeFallsBetweenIssueAndScan(t *testing.T) {
	e := newEngine(t, friday22.Add(-3*time.Hour))
	details := e.create(t, friday22, 2, true)
	issuedAt := details.QR.CreatedAt

	e.clock.Set(friday22.Add(15 * time.Minute))
	result, err := e.scanner.Scan(context.Background(), details.QR.Token)
	require.NoError(t, err)
	require.Equal(t, domain.ScanCheckedInFirst, result.Outcome)

	got, err := e.reservations.Get(context.Background(), tenant, details.Reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Reservation.CheckedInAt)
	checkedIn := *got.Reservation.CheckedInAt
	assert.False(t, checkedIn.Before(issuedAt))
	assert.False(t, checkedIn.After(e.clock.Now()))
	assert.Equal(t, 1, got.QR.ScanCount)
}

func TestScan_LookupTimeoutIsRetriedOnce(t *testing.T) {
	codes := mocks.NewQRCodeRepository(t)
	reservations := mocks.NewReservationRepository(t)
	policy := services.StoragePolicy{Timeout: time.Second, RetryDelay: time.Millisecond}
	machine := services.NewStateMachine(reservations, nil, nil, policy)
	scanner := services.NewScanProcessor(codes, machine, policy)

	now := friday22.Add(time.Hour)
	scanner.SetClock(func() time.Time { return now })

	res := &domain.Reservation{ID: uuid.New(), TenantID: tenant, Status: domain.ReservationCheckedIn, ReservedAt: friday22}
	qr := &domain.QRCode{Token: "tok", ReservationID: res.ID, TenantID: tenant, Active: true, ScanCount: 3, ExpiresAt: friday22.Add(12 * time.Hour)}

	codes.On("GetByToken", mock.Anything, "tok").Return(nil, context.DeadlineExceeded).Once()
	codes.On("GetByToken", mock.Anything, "tok").Return(qr, nil).Once()
	reservations.On("GetByID", mock.Anything, tenant, res.ID).Return(res, nil)
	codes.On("RecordScan", mock.Anything, "tok", now).Return(3, nil)

	result, err := scanner.Scan(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, domain.ScanAlreadyCheckedIn, result.Outcome)
	assert.Equal(t, 4, result.ScanCount)
	codes.AssertNumberOfCalls(t, "GetByToken", 2)
}

func TestScan_PersistentTimeoutReportsTimeout(t *testing.T) {
	codes := mocks.NewQRCodeRepository(t)
	reservations := mocks.NewReservationRepository(t)
	policy := services.StoragePolicy{Timeout: time.Second, RetryDelay: time.Millisecond}
	scanner := services.NewScanProcessor(codes, services.NewStateMachine(reservations, nil, nil, policy), policy)

	codes.On("GetByToken", mock.Anything, "tok").Return(nil, context.DeadlineExceeded).Times(2)

	result, err := scanner.Scan(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, domain.ScanTimeout, result.Outcome)
	codes.AssertNumberOfCalls(t, "GetByToken", 2)
}

func TestScan_TransitionConflictReportsStoredState(t *testing.T) {
	codes := mocks.NewQRCodeRepository(t)
	reservations := mocks.NewReservationRepository(t)
	policy := services.StoragePolicy{Timeout: time.Second, RetryDelay: time.Millisecond}
	machine := services.NewStateMachine(reservations, nil, nil, policy)
	scanner := services.NewScanProcessor(codes, machine, policy)

	now := friday22.Add(time.Hour)
	scanner.SetClock(func() time.Time { return now })
	machine.SetClock(func() time.Time { return now })

	id := uuid.New()
	pending := &domain.Reservation{ID: id, TenantID: tenant, Status: domain.ReservationConfirmed, ReservedAt: friday22}
	checkedIn := &domain.Reservation{ID: id, TenantID: tenant, Status: domain.ReservationCheckedIn, ReservedAt: friday22}
	qr := &domain.QRCode{Token: "tok", ReservationID: id, TenantID: tenant, Active: true, ExpiresAt: friday22.Add(12 * time.Hour)}

	codes.On("GetByToken", mock.Anything, "tok").Return(qr, nil)
	reservations.On("GetByID", mock.Anything, tenant, id).Return(pending, nil).Once()
	codes.On("RecordScan", mock.Anything, "tok", now).Return(0, nil)
	reservations.On("TransitionStatus", mock.Anything, id, domain.ReservationConfirmed, domain.ReservationCheckedIn, now).Return(domain.ErrConflict)
	reservations.On("GetByID", mock.Anything, tenant, id).Return(checkedIn, nil).Once()

	result, err := scanner.Scan(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, domain.ScanAlreadyCheckedIn, result.Outcome)
	assert.Equal(t, 1, result.ScanCount)
}

func TestScan_RetryAfterFailedTransitionChecksIn(t *testing.T) {
	codes := mocks.NewQRCodeRepository(t)
	reservations := mocks.NewReservationRepository(t)
	policy := services.StoragePolicy{Timeout: time.Second, RetryDelay: time.Millisecond}
	machine := services.NewStateMachine(reservations, nil, nil, policy)
	scanner := services.NewScanProcessor(codes, machine, policy)

	now := friday22.Add(time.Hour)
	scanner.SetClock(func() time.Time { return now })
	machine.SetClock(func() time.Time { return now })

	id := uuid.New()
	qr := &domain.QRCode{Token: "tok", ReservationID: id, TenantID: tenant, Active: true, ExpiresAt: friday22.Add(12 * time.Hour)}

	codes.On("GetByToken", mock.Anything, "tok").Return(qr, nil)
	reservations.On("GetByID", mock.Anything, tenant, id).Return(func(context.Context, string, uuid.UUID) (*domain.Reservation, error) {
		return &domain.Reservation{ID: id, TenantID: tenant, Status: domain.ReservationConfirmed, ReservedAt: friday22}, nil
	})
	codes.On("RecordScan", mock.Anything, "tok", now).Return(0, nil).Once()
	codes.On("RecordScan", mock.Anything, "tok", now).Return(1, nil).Once()
	reservations.On("TransitionStatus", mock.Anything, id, domain.ReservationConfirmed, domain.ReservationCheckedIn, now).
		Return(context.DeadlineExceeded).Times(2)
	reservations.On("TransitionStatus", mock.Anything, id, domain.ReservationConfirmed, domain.ReservationCheckedIn, now).
		Return(nil).Once()

	first, err := scanner.Scan(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.ScanTimeout, first.Outcome)

	retry, err := scanner.Scan(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, domain.ScanCheckedInFirst, retry.Outcome)
	assert.Equal(t, 2, retry.ScanCount)
	require.NotNil(t, retry.Guest.CheckedInAt)
	assert.True(t, retry.Guest.CheckedInAt.Equal(now))
}

func TestScan_RetryAfterFailedTransitionOnStore(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)
	ctx := context.Background()

	// The counter moved but the check-in never landed.
	_, err := e.store.QRCodes().RecordScan(ctx, details.QR.Token, friday22)
	require.NoError(t, err)

	result, err := e.scanner.Scan(ctx, details.QR.Token)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanCheckedInFirst, result.Outcome)
	assert.Equal(t, 2, result.ScanCount)
	assert.Equal(t, domain.ReservationCheckedIn, e.status(t, details))

	again, err := e.scanner.Scan(ctx, details.QR.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.ScanAlreadyCheckedIn, again.Outcome)
	assert.Len(t, e.store.Audit().Entries(details.Reservation.ID), 1)
}
