package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/adapter/repository/postgres"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQRMock(t *testing.T) (*postgres.QRCodeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return postgres.NewQRCodeRepository(db), mock
}

func TestQRCodeRepository_IssueDeactivatesPrevious(t *testing.T) {
	repo, mock := newQRMock(t)
	qr := &domain.QRCode{
		Token:         "tok-2",
		ReservationID: uuid.New(),
		TenantID:      "venue-1",
		Version:       2,
		Active:        true,
		IssuedFor:     time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC),
		CreatedAt:     time.Now().UTC(),
		ExpiresAt:     time.Date(2024, 3, 16, 11, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectExec("SET active = FALSE").WithArgs(qr.ReservationID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO reservation_qr_codes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Issue(context.Background(), qr)

	assert.NoError(t, err)
}

func TestQRCodeRepository_IssueRollsBackOnFailure(t *testing.T) {
	repo, mock := newQRMock(t)
	qr := &domain.QRCode{Token: "tok", ReservationID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec("SET active = FALSE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO reservation_qr_codes").WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	err := repo.Issue(context.Background(), qr)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQRCodeRepository_RecordScanReturnsPreviousCount(t *testing.T) {
	repo, mock := newQRMock(t)
	at := time.Now().UTC()

	mock.ExpectQuery("SET scan_count = scan_count \\+ 1").
		WithArgs("tok", at).
		WillReturnRows(sqlmock.NewRows([]string{"previous"}).AddRow(2))

	previous, err := repo.RecordScan(context.Background(), "tok", at)

	require.NoError(t, err)
	assert.Equal(t, 2, previous)
}

func TestQRCodeRepository_RecordScanOnExpiredToken(t *testing.T) {
	repo, mock := newQRMock(t)
	at := time.Now().UTC()

	mock.ExpectQuery("SET scan_count = scan_count \\+ 1").WillReturnRows(sqlmock.NewRows([]string{"previous"}))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.RecordScan(context.Background(), "tok", at)

	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestQRCodeRepository_RecordScanOnUnknownToken(t *testing.T) {
	repo, mock := newQRMock(t)

	mock.ExpectQuery("SET scan_count = scan_count \\+ 1").WillReturnRows(sqlmock.NewRows([]string{"previous"}))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.RecordScan(context.Background(), "nope", time.Now())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQRCodeRepository_GetByToken(t *testing.T) {
	repo, mock := newQRMock(t)
	resID := uuid.New()
	expires := time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM reservation_qr_codes").
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{
			"token", "reservation_id", "tenant_id", "version", "scan_count", "active", "issued_for", "created_at", "expires_at", "last_scanned_at",
		}).AddRow("tok", resID.String(), "venue-1", 1, 0, true, expires.Add(-12*time.Hour), expires.Add(-16*time.Hour), expires, nil))

	qr, err := repo.GetByToken(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, resID, qr.ReservationID)
	assert.True(t, qr.Active)
	assert.Nil(t, qr.LastScannedAt)
}

func TestQRCodeRepository_ScanTallies(t *testing.T) {
	repo, mock := newQRMock(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	expires := time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SUM\\(scan_count\\), 0\\), MAX\\(expires_at\\) FILTER \\(WHERE active\\)").
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "sum", "max"}).
			AddRow(a.String(), 5, expires).
			AddRow(c.String(), 2, nil))

	tallies, err := repo.ScanTallies(context.Background(), []uuid.UUID{a, b, c})

	require.NoError(t, err)
	assert.Equal(t, 5, tallies[a].Count)
	assert.True(t, expires.Equal(tallies[a].ActiveExpiry))
	assert.Equal(t, 0, tallies[b].Count)
	assert.Equal(t, 2, tallies[c].Count)
	assert.True(t, tallies[c].ActiveExpiry.IsZero())
}

func TestQRCodeRepository_PurgeInactive(t *testing.T) {
	repo, mock := newQRMock(t)
	before := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM reservation_qr_codes").
		WithArgs(before, "").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.PurgeInactive(context.Background(), "", before)

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
