package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/srgjo27/reservation_engine/internal/adapter/auth"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maria = domain.StaffIdentity{StaffID: "maria", TenantID: "venue-1", Role: "door"}

func TestJWTResolver_RoundTrip(t *testing.T) {
	resolver, err := auth.NewJWTResolver("s3cret")
	require.NoError(t, err)

	token, err := resolver.Sign(maria, time.Hour)
	require.NoError(t, err)

	staff, err := resolver.Resolve(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, maria, staff)
}

func TestJWTResolver_Rejects(t *testing.T) {
	resolver, err := auth.NewJWTResolver("s3cret")
	require.NoError(t, err)
	other, err := auth.NewJWTResolver("other")
	require.NoError(t, err)

	expired, err := resolver.Sign(maria, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.Sign(maria, time.Hour)
	require.NoError(t, err)
	noTenant, err := resolver.Sign(domain.StaffIdentity{StaffID: "maria"}, time.Hour)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.StaffClaims{
		TenantID:         "venue-1",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "maria"},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, auth.StaffClaims{
		TenantID: "venue-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "maria",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", foreign},
		{"missing tenant", noTenant},
		{"missing expiry", noExpiry},
		{"wrong algorithm", wrongAlg},
		{"garbage", "not-a-token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestNewJWTResolver_RequiresSecret(t *testing.T) {
	_, err := auth.NewJWTResolver("")
	assert.Error(t, err)
}
