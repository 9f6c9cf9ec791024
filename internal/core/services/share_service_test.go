package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestShareLink_CreateAndViewCounts(t *testing.T) {
	e := newEngine(t, friday22.Add(-5*time.Hour))
	details := e.create(t, friday22, 4, true)
	ctx := context.Background()

	result, err := e.shares.Create(ctx, tenant, details.Reservation.ID, "see you tonight")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.URL, "https://venue.test/api/v1/share/"))
	assert.True(t, result.ExpiryHint.Equal(details.QR.ExpiresAt))

	first, err := e.shares.View(ctx, result.Link.ShareID)
	require.NoError(t, err)
	second, err := e.shares.View(ctx, result.Link.ShareID)
	require.NoError(t, err)

	assert.Equal(t, 1, first.ViewCount)
	assert.Equal(t, 2, second.ViewCount)
	assert.Equal(t, "see you tonight", second.Message)
	assert.Equal(t, details.Reservation.Number, second.Snapshot.ReservationNumber)
	assert.Equal(t, "2024-03-15", second.Snapshot.BusinessDay)
	assert.True(t, bytes.HasPrefix(second.Snapshot.QRImagePNG, pngMagic))

	// Viewing never counts as a scan.
	assert.Equal(t, 0, e.scanCount(t, details.QR.Token))
}

func TestShareLink_EachCreateIsIndependent(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 4, true)
	ctx := context.Background()

	a, err := e.shares.Create(ctx, tenant, details.Reservation.ID, "")
	require.NoError(t, err)
	b, err := e.shares.Create(ctx, tenant, details.Reservation.ID, "")
	require.NoError(t, err)
	require.NotEqual(t, a.Link.ShareID, b.Link.ShareID)

	_, err = e.shares.View(ctx, a.Link.ShareID)
	require.NoError(t, err)
	view, err := e.shares.View(ctx, b.Link.ShareID)
	require.NoError(t, err)

	assert.Equal(t, 1, view.ViewCount)
}

func TestShareLink_SnapshotFollowsStatusChanges(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 4, true)
	ctx := context.Background()
	link, err := e.shares.Create(ctx, tenant, details.Reservation.ID, "")
	require.NoError(t, err)

	before, err := e.shares.View(ctx, link.Link.ShareID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, before.Snapshot.Status)

	_, err = e.scanner.Scan(ctx, details.QR.Token)
	require.NoError(t, err)

	after, err := e.shares.View(ctx, link.Link.ShareID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCheckedIn, after.Snapshot.Status)
}

func TestShareLink_TerminalReservationHasNoImage(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 4, true)
	ctx := context.Background()
	link, err := e.shares.Create(ctx, tenant, details.Reservation.ID, "")
	require.NoError(t, err)

	_, err = e.reservations.Act(ctx, tenant, details.Reservation.ID, "cancel", "staff:maria", "")
	require.NoError(t, err)

	view, err := e.shares.View(ctx, link.Link.ShareID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, view.Snapshot.Status)
	assert.Empty(t, view.Snapshot.QRImagePNG)

	_, err = e.shares.QRImage(ctx, link.Link.ShareID)
	assert.ErrorIs(t, err, domain.ErrExpired)

	_, err = e.shares.Create(ctx, tenant, details.Reservation.ID, "")
	assert.ErrorIs(t, err, domain.ErrReservationTerminal)
}

func TestShareLink_Errors(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 4, true)
	ctx := context.Background()

	_, err := e.shares.View(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.shares.Create(ctx, tenant, details.Reservation.ID, strings.Repeat("x", 501))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.shares.Create(ctx, "venue-2", details.Reservation.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareLink_QRImage(t *testing.T) {
	e := newEngine(t, friday22)
	details := e.create(t, friday22, 4, true)
	ctx := context.Background()
	link, err := e.shares.Create(ctx, tenant, details.Reservation.ID, "")
	require.NoError(t, err)

	png, err := e.shares.QRImage(ctx, link.Link.ShareID)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
