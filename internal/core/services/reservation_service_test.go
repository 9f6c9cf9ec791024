package services_test

import (
	"context"
	"errors"
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

func TestCreate_AssignsNumberPerBusinessDay(t *testing.T) {
	e := newEngine(t, friday22.Add(-6*time.Hour))

	first := e.create(t, friday22, 2, false)
	second := e.create(t, friday22.Add(time.Hour), 2, false)
	// 03:00 on Saturday still belongs to Friday's business day.
	third := e.create(t, time.Date(2024, 3, 16, 3, 0, 0, 0, time.UTC), 2, false)
	saturday := e.create(t, time.Date(2024, 3, 16, 20, 0, 0, 0, time.UTC), 2, false)

	assert.Equal(t, "RES-20240315-001", first.Reservation.Number)
	assert.Equal(t, "RES-20240315-002", second.Reservation.Number)
	assert.Equal(t, "RES-20240315-003", third.Reservation.Number)
	assert.Equal(t, "RES-20240316-001", saturday.Reservation.Number)
	assert.Equal(t, domain.ReservationPending, first.Reservation.Status)
	assert.Equal(t, 1, first.QR.Version)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	e := newEngine(t, friday22)

	_, err := e.reservations.Create(context.Background(), domain.CreateReservationInput{
		TenantID:     tenant,
		CustomerName: "Ana",
		ReservedAt:   friday22,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_KeepsReservationWhenEagerIssueFails(t *testing.T) {
	reservations := mocks.NewReservationRepository(t)
	codes := mocks.NewQRCodeRepository(t)
	policy := services.StoragePolicy{Timeout: time.Second, RetryDelay: time.Millisecond}
	settings := services.NewTenantSettings(nil, domain.TenantSettings{Location: time.UTC, ResetHour: 4}, policy)
	machine := services.NewStateMachine(reservations, nil, nil, policy)
	issuer := services.NewQRIssuer(reservations, codes, nil, settings, policy)
	svc := services.NewReservationService(reservations, codes, issuer, machine, settings, policy)

	reservations.On("NextSequence", mock.Anything, tenant, domain.BusinessDay{Year: 2024, Month: time.March, Day: 15}).Return(7, nil)
	reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	codes.On("GetActive", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, domain.ErrNotFound)
	codes.On("Issue", mock.Anything, mock.AnythingOfType("*domain.QRCode")).Return(errors.New("disk full"))

	details, err := svc.Create(context.Background(), domain.CreateReservationInput{
		TenantID:     tenant,
		CustomerName: "Ana",
		ReservedAt:   friday22,
		GuestCount:   2,
		Confirmed:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, "RES-20240315-007", details.Reservation.Number)
	assert.Equal(t, domain.ReservationConfirmed, details.Reservation.Status)
	assert.Nil(t, details.QR)
}

func TestIssue_ReusesActiveCodeForSameTime(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)

	again, err := e.issuer.Issue(context.Background(), tenant, details.Reservation.ID)

	require.NoError(t, err)
	assert.Equal(t, details.QR.Token, again.Token)
	assert.Equal(t, 1, again.Version)
}

func TestIssue_TerminalReservationFails(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)
	_, err := e.reservations.Act(context.Background(), tenant, details.Reservation.ID, "no-show", "staff:maria", "")
	require.NoError(t, err)

	_, err = e.issuer.Issue(context.Background(), tenant, details.Reservation.ID)

	assert.ErrorIs(t, err, domain.ErrReservationTerminal)
}

func TestIssue_UnknownReservation(t *testing.T) {
	e := newEngine(t, friday22)

	_, err := e.issuer.Issue(context.Background(), tenant, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewToken_IsURLSafeAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := services.NewToken()
		require.NoError(t, err)
		assert.Len(t, token, 43)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestAct_ConfirmAndIllegalMoves(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, false)
	ctx := context.Background()

	tr, err := e.reservations.Act(ctx, tenant, details.Reservation.ID, "confirm", "staff:maria", "")
	require.NoError(t, err)
	assert.True(t, tr.Changed)
	assert.Equal(t, domain.ReservationConfirmed, tr.To)

	tr, err = e.reservations.Act(ctx, tenant, details.Reservation.ID, "confirm", "staff:maria", "")
	require.NoError(t, err)
	assert.False(t, tr.Changed)

	_, err = e.reservations.Act(ctx, tenant, details.Reservation.ID, "complete", "staff:maria", "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	_, err = e.reservations.Act(ctx, tenant, details.Reservation.ID, "teleport", "staff:maria", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.reservations.Act(ctx, tenant, details.Reservation.ID, "cancel", " ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, []domain.Event{domain.EventConfirm}, eventsOf(e.store.Audit().Entries(details.Reservation.ID)))
}

func TestAct_OtherTenantCannotSeeReservation(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, false)

	_, err := e.reservations.Act(context.Background(), "venue-2", details.Reservation.ID, "cancel", "staff:x", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ReservationPending, e.status(t, details))
}

func TestCorrect_LeavesTerminalStateWithAudit(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)
	ctx := context.Background()

	_, err := e.reservations.Act(ctx, tenant, details.Reservation.ID, "no-show", "staff:maria", "")
	require.NoError(t, err)

	_, err = e.reservations.Correct(ctx, tenant, details.Reservation.ID, "CHECKED_IN", "staff:maria", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.reservations.Correct(ctx, tenant, details.Reservation.ID, "ARRIVED", "staff:maria", "wrong table")
	assert.ErrorIs(t, err, domain.ErrValidation)

	tr, err := e.reservations.Correct(ctx, tenant, details.Reservation.ID, "CHECKED_IN", "staff:maria", "guests were at the bar")
	require.NoError(t, err)
	assert.True(t, tr.Changed)
	assert.Equal(t, domain.ReservationNoShow, tr.From)
	assert.Equal(t, domain.ReservationCheckedIn, e.status(t, details))

	entries := e.store.Audit().Entries(details.Reservation.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EventStaffCorrection, entries[1].Event)
	assert.Equal(t, "guests were at the bar", entries[1].Reason)
}

func TestReschedule_ReissuesCodeAndAudits(t *testing.T) {
	e := newEngine(t, friday22.Add(-5*time.Hour))
	details := e.create(t, friday22, 2, true)
	moved := friday22.Add(90 * time.Minute)

	got, err := e.reservations.Reschedule(context.Background(), tenant, details.Reservation.ID, moved, "staff:maria", "band runs late")

	require.NoError(t, err)
	assert.True(t, got.Reservation.ReservedAt.Equal(moved))
	assert.Equal(t, 2, got.QR.Version)
	assert.True(t, got.QR.ExpiresAt.Equal(moved.Add(12*time.Hour)))

	old, err := e.store.QRCodes().GetByToken(context.Background(), details.QR.Token)
	require.NoError(t, err)
	assert.False(t, old.Active)

	entries := e.store.Audit().Entries(details.Reservation.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EventReschedule, entries[0].Event)
	assert.Equal(t, domain.ReservationConfirmed, entries[0].FromStatus)
	assert.Equal(t, domain.ReservationConfirmed, entries[0].ToStatus)
	assert.Contains(t, entries[0].Reason, "band runs late")
}

func TestReschedule_TerminalIsIllegal(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 2, true)
	_, err := e.reservations.Act(context.Background(), tenant, details.Reservation.ID, "cancel", "staff:maria", "")
	require.NoError(t, err)

	_, err = e.reservations.Reschedule(context.Background(), tenant, details.Reservation.ID, friday22.Add(time.Hour), "staff:maria", "")

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestTenantSettings_StoredValuesOverrideDefaults(t *testing.T) {
	e := newEngine(t, friday22)
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)
	e.store.TenantSettings().Put(domain.TenantSettings{TenantID: tenant, QRWindow: 6 * time.Hour, Location: loc, ResetHour: 5})

	details := e.create(t, friday22, 2, true)

	assert.True(t, details.QR.ExpiresAt.Equal(friday22.Add(6*time.Hour)))
	// 22:00 UTC is 17:00 in Guayaquil, still Friday.
	assert.Equal(t, "RES-20240315-001", details.Reservation.Number)
}
