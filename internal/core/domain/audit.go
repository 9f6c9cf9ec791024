package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActorSystemScan     = "system:scan"
	ActorReconciliation = "system:reconciliation"
	ActorAging          = "system:aging"
	ActorHostAttendance = "system:host-attendance"
)

// AuditEntry records one state change (or audited no-status-change action
// such as a reschedule).
type AuditEntry struct {
	ID            uuid.UUID         `json:"id"`
	TenantID      string            `json:"tenant_id"`
	ReservationID uuid.UUID         `json:"reservation_id"`
	Event         Event             `json:"event"`
	Actor         string            `json:"actor"`
	FromStatus    ReservationStatus `json:"from_status"`
	ToStatus      ReservationStatus `json:"to_status"`
	Reason        string            `json:"reason,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// TenantSettings holds per-venue policy. Zero values fall back to defaults.
type TenantSettings struct {
	TenantID  string
	QRWindow  time.Duration
	Location  *time.Location
	ResetHour int
}

func (s TenantSettings) Resolver() DayResolver {
	return NewDayResolver(s.Location, s.ResetHour)
}

func (s TenantSettings) Window() time.Duration {
	if s.QRWindow <= 0 {
		return DefaultQRWindow
	}
	return s.QRWindow
}

type StaffIdentity struct {
	StaffID  string
	TenantID string
	Role     string
}
