package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

type TransitionResult struct {
	Reservation *domain.Reservation
	From        domain.ReservationStatus
	To          domain.ReservationStatus
	Changed     bool
}

// StateMachine is the only writer of the reservation status field.
type StateMachine struct {
	reservations ports.ReservationRepository
	audit        ports.AuditSink
	cache        ports.SnapshotCache
	policy       StoragePolicy
	now          func() time.Time
}

func NewStateMachine(reservations ports.ReservationRepository, audit ports.AuditSink, cache ports.SnapshotCache, policy StoragePolicy) *StateMachine {
	return &StateMachine{
		reservations: reservations,
		audit:        audit,
		cache:        cache,
		policy:       policy,
		now:          time.Now,
	}
}

func (m *StateMachine) SetClock(now func() time.Time) {
	m.now = now
}

func (m *StateMachine) Load(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Reservation, error) {
	return call(ctx, m.policy, func(ctx context.Context) (*domain.Reservation, error) {
		return m.reservations.GetByID(ctx, tenantID, id)
	})
}

func (m *StateMachine) Apply(ctx context.Context, tenantID string, id uuid.UUID, event domain.Event, actor, reason string) (TransitionResult, error) {
	res, err := m.Load(ctx, tenantID, id)
	if err != nil {
		return TransitionResult{}, err
	}
	return m.ApplyTo(ctx, res, event, actor, reason)
}

// ApplyTo runs event against an already loaded reservation and updates it in
// place on success.
func (m *StateMachine) ApplyTo(ctx context.Context, res *domain.Reservation, event domain.Event, actor, reason string) (TransitionResult, error) {
	from := res.Status
	to, noop, err := domain.NextStatus(from, event)
	if err != nil {
		log.Printf("level=error msg=\"illegal transition\" reservation=%s event=%s from=%s actor=%s", res.ID, event, from, actor)
		return TransitionResult{Reservation: res, From: from, To: from}, err
	}
	if noop {
		return TransitionResult{Reservation: res, From: from, To: to}, nil
	}

	if err := m.commit(ctx, res, from, to, event, actor, reason); err != nil {
		return TransitionResult{Reservation: res, From: from, To: from}, err
	}
	return TransitionResult{Reservation: res, From: from, To: to, Changed: true}, nil
}

// Correct moves a reservation to any status, terminal or not, on behalf of a
// named staff member. It is the only way out of a terminal state.
func (m *StateMachine) Correct(ctx context.Context, tenantID string, id uuid.UUID, to domain.ReservationStatus, actor, reason string) (TransitionResult, error) {
	if strings.TrimSpace(actor) == "" {
		return TransitionResult{}, domain.Validationf("correction requires an actor")
	}
	if strings.TrimSpace(reason) == "" {
		return TransitionResult{}, domain.Validationf("correction requires a reason")
	}

	res, err := m.Load(ctx, tenantID, id)
	if err != nil {
		return TransitionResult{}, err
	}
	from := res.Status
	if from == to {
		return TransitionResult{Reservation: res, From: from, To: to}, nil
	}

	if err := m.commit(ctx, res, from, to, domain.EventStaffCorrection, actor, reason); err != nil {
		return TransitionResult{Reservation: res, From: from, To: from}, err
	}
	log.Printf("level=warn msg=\"status corrected\" reservation=%s from=%s to=%s actor=%s", res.ID, from, to, actor)
	return TransitionResult{Reservation: res, From: from, To: to, Changed: true}, nil
}

func (m *StateMachine) commit(ctx context.Context, res *domain.Reservation, from, to domain.ReservationStatus, event domain.Event, actor, reason string) error {
	at := m.now().UTC()
	err := exec(ctx, m.policy, func(ctx context.Context) error {
		return m.reservations.TransitionStatus(ctx, res.ID, from, to, at)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Printf("level=warn msg=\"status changed concurrently\" reservation=%s event=%s expected=%s", res.ID, event, from)
		}
		return err
	}

	res.Status = to
	res.UpdatedAt = at
	if to == domain.ReservationCheckedIn && res.CheckedInAt == nil {
		res.CheckedInAt = &at
	}

	m.Record(ctx, domain.AuditEntry{
		ID:            uuid.New(),
		TenantID:      res.TenantID,
		ReservationID: res.ID,
		Event:         event,
		Actor:         actor,
		FromStatus:    from,
		ToStatus:      to,
		Reason:        reason,
		OccurredAt:    at,
	})
	m.invalidate(ctx, res.ID)
	return nil
}

// Record writes an audit entry. Sink failures are logged, never returned: the
// status change they describe is already committed.
func (m *StateMachine) Record(ctx context.Context, entry domain.AuditEntry) {
	if m.audit == nil {
		return
	}
	err := exec(ctx, m.policy, func(ctx context.Context) error {
		return m.audit.Record(ctx, entry)
	})
	if err != nil {
		log.Printf("level=error msg=\"audit write failed\" reservation=%s event=%s err=%v", entry.ReservationID, entry.Event, err)
	}
}

func (m *StateMachine) invalidate(ctx context.Context, id uuid.UUID) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Invalidate(ctx, id); err != nil {
		log.Printf("level=warn msg=\"snapshot invalidation failed\" reservation=%s err=%v", id, err)
	}
}
