package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

// StaffClaims are carried by staff bearer tokens. The subject is the staff id.
type StaffClaims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver validates HS256 tokens minted by the staff login service.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) (*JWTResolver, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTResolver{secret: []byte(secret)}, nil
}

func (r *JWTResolver) Resolve(ctx context.Context, bearer string) (domain.StaffIdentity, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(bearer, claims, func(t *jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.StaffIdentity{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" || claims.TenantID == "" {
		return domain.StaffIdentity{}, domain.ErrUnauthorized
	}
	return domain.StaffIdentity{StaffID: claims.Subject, TenantID: claims.TenantID, Role: claims.Role}, nil
}

// Sign mints a token for staff. It backs local tooling and tests; production
// tokens come from the login service sharing the secret.
func (r *JWTResolver) Sign(staff domain.StaffIdentity, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, StaffClaims{
		TenantID: staff.TenantID,
		Role:     staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staff.StaffID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(r.secret)
}
