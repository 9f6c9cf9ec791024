package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

type contextKey string

const staffKey contextKey = "staff"

type statusWriter struct {
	http.ResponseWriter
	status int
	tenant string
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(writer, r)

		level := "info"
		if writer.status >= http.StatusInternalServerError {
			level = "error"
		}
		log.Printf("level=%s msg=request method=%s path=%s status=%d duration_ms=%d tenant=%s",
			level, r.Method, r.URL.Path, writer.status, time.Since(start).Milliseconds(), writer.tenant)
	})
}

// Authenticator resolves staff bearer tokens. The tenant of every staff
// request comes from the token, never from the request body.
type Authenticator struct {
	resolver ports.StaffResolver
}

func NewAuthenticator(resolver ports.StaffResolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

func (a *Authenticator) identify(r *http.Request) (domain.StaffIdentity, bool, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return domain.StaffIdentity{}, false, nil
	}
	bearer, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(bearer) == "" {
		return domain.StaffIdentity{}, false, domain.ErrUnauthorized
	}
	staff, err := a.resolver.Resolve(r.Context(), strings.TrimSpace(bearer))
	if err != nil {
		return domain.StaffIdentity{}, false, err
	}
	return staff, true, nil
}

// RequireStaff rejects requests without a valid staff token.
func (a *Authenticator) RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, ok, err := a.identify(r)
		if err != nil || !ok {
			writeDomainError(w, r, domain.ErrUnauthorized)
			return
		}
		next(w, withStaff(w, r, staff))
	}
}

// OptionalStaff attaches the staff identity when a valid token is present
// and serves the request anonymously otherwise.
func (a *Authenticator) OptionalStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, ok, err := a.identify(r)
		if err == nil && ok {
			r = withStaff(w, r, staff)
		}
		next(w, r)
	}
}

// withStaff also tags the access log line when the logging middleware wraps w.
func withStaff(w http.ResponseWriter, r *http.Request, staff domain.StaffIdentity) *http.Request {
	if sw, ok := w.(*statusWriter); ok {
		sw.tenant = staff.TenantID
	}
	return r.WithContext(context.WithValue(r.Context(), staffKey, staff))
}

func StaffFrom(ctx context.Context) (domain.StaffIdentity, bool) {
	staff, ok := ctx.Value(staffKey).(domain.StaffIdentity)
	return staff, ok
}
