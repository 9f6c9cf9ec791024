package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestQRCodeUsable_ExpiryIsExclusive(t *testing.T) {
	expires := time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)
	qr := &domain.QRCode{Active: true, ExpiresAt: expires}

	assert.True(t, qr.Usable(expires.Add(-time.Second)))
	assert.False(t, qr.Usable(expires))
	assert.False(t, qr.Usable(expires.Add(time.Second)))
}

func TestQRCodeUsable_InactiveVersion(t *testing.T) {
	qr := &domain.QRCode{Active: false, ExpiresAt: time.Now().Add(time.Hour)}

	assert.False(t, qr.Usable(time.Now()))
}

func TestReservationWindow(t *testing.T) {
	reservedAt := time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)
	res := &domain.Reservation{ReservedAt: reservedAt}

	assert.Equal(t, time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), res.QRExpiry(domain.DefaultQRWindow))
	assert.False(t, res.WindowClosed(domain.DefaultQRWindow, reservedAt.Add(11*time.Hour)))
	assert.True(t, res.WindowClosed(domain.DefaultQRWindow, reservedAt.Add(12*time.Hour)))
}

func TestScanResultPublic(t *testing.T) {
	expired := domain.ScanResult{Outcome: domain.ScanExpired, ScanCount: 4}
	assert.Equal(t, domain.ScanResult{Outcome: domain.ScanInvalid}, expired.Public())

	first := domain.ScanResult{Outcome: domain.ScanCheckedInFirst, ScanCount: 1}
	assert.Equal(t, first, first.Public())

	rejected := domain.ScanResult{
		Outcome:   domain.ScanRejected,
		ScanCount: 2,
		Guest:     &domain.GuestSummary{CustomerName: "Ana", GuestCount: 4},
	}
	assert.Equal(t, domain.ScanResult{Outcome: domain.ScanRejected}, rejected.Public())
}

func TestCreateReservationInputValidate(t *testing.T) {
	valid := domain.CreateReservationInput{
		TenantID:     "venue-1",
		CustomerName: "Ana",
		ReservedAt:   time.Now(),
		GuestCount:   4,
	}
	assert.NoError(t, valid.Validate())

	missingGuests := valid
	missingGuests.GuestCount = 0
	assert.ErrorIs(t, missingGuests.Validate(), domain.ErrValidation)

	missingTenant := valid
	missingTenant.TenantID = ""
	assert.ErrorIs(t, missingTenant.Validate(), domain.ErrValidation)
}
