package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

// ReservationDetails pairs a reservation with its currently active code, if any.
type ReservationDetails struct {
	Reservation *domain.Reservation
	QR          *domain.QRCode
}

type ReservationService struct {
	reservations ports.ReservationRepository
	codes        ports.QRCodeRepository
	issuer       *QRIssuer
	machine      *StateMachine
	settings     *TenantSettings
	policy       StoragePolicy
	now          func() time.Time
}

func NewReservationService(
	reservations ports.ReservationRepository,
	codes ports.QRCodeRepository,
	issuer *QRIssuer,
	machine *StateMachine,
	settings *TenantSettings,
	policy StoragePolicy,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		codes:        codes,
		issuer:       issuer,
		machine:      machine,
		settings:     settings,
		policy:       policy,
		now:          time.Now,
	}
}

func (s *ReservationService) SetClock(now func() time.Time) {
	s.now = now
}

func reservationNumber(day domain.BusinessDay, seq int) string {
	return fmt.Sprintf("RES-%s-%03d", strings.ReplaceAll(day.String(), "-", ""), seq)
}

func (s *ReservationService) Create(ctx context.Context, in domain.CreateReservationInput) (*ReservationDetails, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.settings.For(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	day := settings.Resolver().DayOf(in.ReservedAt)

	seq, err := call(ctx, s.policy, func(ctx context.Context) (int, error) {
		return s.reservations.NextSequence(ctx, in.TenantID, day)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate reservation number: %w", err)
	}

	status := domain.ReservationPending
	if in.Confirmed {
		status = domain.ReservationConfirmed
	}
	now := s.now().UTC()

	res := &domain.Reservation{
		ID:            uuid.New(),
		Number:        reservationNumber(day, seq),
		TenantID:      in.TenantID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		ReservedAt:    in.ReservedAt.UTC(),
		GuestCount:    in.GuestCount,
		Details:       in.Details,
		PromoterID:    in.PromoterID,
		Source:        in.Source,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := exec(ctx, s.policy, func(ctx context.Context) error {
		return s.reservations.Create(ctx, res)
	}); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	log.Printf("level=info msg=\"reservation created\" reservation=%s number=%s tenant=%s", res.ID, res.Number, res.TenantID)

	// The code can still be issued lazily through the issue endpoint.
	qr, err := s.issuer.IssueFor(ctx, res)
	if err != nil {
		log.Printf("level=warn msg=\"eager qr issue failed\" reservation=%s err=%v", res.ID, err)
		qr = nil
	}

	return &ReservationDetails{Reservation: res, QR: qr}, nil
}

func (s *ReservationService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*ReservationDetails, error) {
	res, err := s.machine.Load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	qr, err := call(ctx, s.policy, func(ctx context.Context) (*domain.QRCode, error) {
		return s.codes.GetActive(ctx, res.ID)
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return &ReservationDetails{Reservation: res, QR: qr}, nil
}

// Act runs a named staff action (confirm, complete, cancel, no-show).
func (s *ReservationService) Act(ctx context.Context, tenantID string, id uuid.UUID, action, actor, reason string) (TransitionResult, error) {
	event, ok := domain.StaffEvent(action)
	if !ok {
		return TransitionResult{}, domain.Validationf("unknown action %q", action)
	}
	if strings.TrimSpace(actor) == "" {
		return TransitionResult{}, domain.Validationf("staff action requires an actor")
	}
	return s.machine.Apply(ctx, tenantID, id, event, actor, reason)
}

func (s *ReservationService) Correct(ctx context.Context, tenantID string, id uuid.UUID, status, actor, reason string) (TransitionResult, error) {
	to, err := domain.ParseStatus(status)
	if err != nil {
		return TransitionResult{}, err
	}
	return s.machine.Correct(ctx, tenantID, id, to, actor, reason)
}

// Reschedule moves reservedAt and reissues the code for the new time. The old
// token is deactivated by the reissue, so printed copies stop admitting.
func (s *ReservationService) Reschedule(ctx context.Context, tenantID string, id uuid.UUID, reservedAt time.Time, actor, reason string) (*ReservationDetails, error) {
	if reservedAt.IsZero() {
		return nil, domain.Validationf("reserved_at is required")
	}
	if strings.TrimSpace(actor) == "" {
		return nil, domain.Validationf("reschedule requires an actor")
	}

	res, err := s.machine.Load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if res.IsTerminal() {
		log.Printf("level=error msg=\"illegal transition\" reservation=%s event=%s from=%s actor=%s", res.ID, domain.EventReschedule, res.Status, actor)
		return nil, domain.IllegalTransition(res.Status, domain.EventReschedule)
	}

	reservedAt = reservedAt.UTC()
	previous := res.ReservedAt
	if !previous.Equal(reservedAt) {
		at := s.now().UTC()
		if err := exec(ctx, s.policy, func(ctx context.Context) error {
			return s.reservations.Reschedule(ctx, res.ID, previous, reservedAt, at)
		}); err != nil {
			return nil, err
		}
		res.ReservedAt = reservedAt
		res.UpdatedAt = at

		note := fmt.Sprintf("reserved_at %s -> %s", previous.Format(time.RFC3339), reservedAt.Format(time.RFC3339))
		if reason = strings.TrimSpace(reason); reason != "" {
			note = reason + "; " + note
		}
		s.machine.Record(ctx, domain.AuditEntry{
			ID:            uuid.New(),
			TenantID:      res.TenantID,
			ReservationID: res.ID,
			Event:         domain.EventReschedule,
			Actor:         actor,
			FromStatus:    res.Status,
			ToStatus:      res.Status,
			Reason:        note,
			OccurredAt:    at,
		})
	}

	qr, err := s.issuer.IssueFor(ctx, res)
	if err != nil {
		return nil, err
	}
	return &ReservationDetails{Reservation: res, QR: qr}, nil
}
