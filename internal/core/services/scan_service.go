package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ScanProcessor struct {
	codes   ports.QRCodeRepository
	machine *StateMachine
	policy  StoragePolicy
	now     func() time.Time
	tracer  trace.Tracer
}

func NewScanProcessor(codes ports.QRCodeRepository, machine *StateMachine, policy StoragePolicy) *ScanProcessor {
	return &ScanProcessor{
		codes:   codes,
		machine: machine,
		policy:  policy,
		now:     time.Now,
		tracer:  otel.Tracer("reservation_engine/scan"),
	}
}

func (s *ScanProcessor) SetClock(now func() time.Time) {
	s.now = now
}

// Scan redeems a token. Storage timeouts are reported as the TIMEOUT outcome
// so door clients can retry; only unexpected failures return an error.
func (s *ScanProcessor) Scan(ctx context.Context, token string) (domain.ScanResult, error) {
	return s.ScanForTenant(ctx, "", token)
}

// ScanForTenant is Scan restricted to one venue: tokens of other tenants are
// INVALID and never counted. An empty tenantID accepts any tenant.
func (s *ScanProcessor) ScanForTenant(ctx context.Context, tenantID, token string) (domain.ScanResult, error) {
	ctx, span := s.tracer.Start(ctx, "ScanProcessor.Scan")
	defer span.End()

	result, err := s.scan(ctx, tenantID, strings.TrimSpace(token))
	span.SetAttributes(attribute.String("scan.outcome", string(result.Outcome)))
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

func (s *ScanProcessor) scan(ctx context.Context, tenantID, token string) (domain.ScanResult, error) {
	now := s.now()
	if token == "" {
		return domain.ScanResult{Outcome: domain.ScanInvalid}, nil
	}

	qr, err := call(ctx, s.policy, func(ctx context.Context) (*domain.QRCode, error) {
		return s.codes.GetByToken(ctx, token)
	})
	if err != nil {
		return s.failed(err, "lookup")
	}
	if tenantID != "" && qr.TenantID != tenantID {
		return domain.ScanResult{Outcome: domain.ScanInvalid}, nil
	}

	if !qr.Usable(now) {
		log.Printf("level=info msg=\"scan of unusable token\" reservation=%s version=%d active=%t", qr.ReservationID, qr.Version, qr.Active)
		return domain.ScanResult{Outcome: domain.ScanExpired, ScanCount: qr.ScanCount}, nil
	}

	res, err := s.machine.Load(ctx, qr.TenantID, qr.ReservationID)
	if err != nil {
		return s.failed(err, "reservation")
	}

	switch res.Status {
	case domain.ReservationCancelled, domain.ReservationNoShow, domain.ReservationDropped:
		return domain.ScanResult{Outcome: domain.ScanRejected, ScanCount: qr.ScanCount, Guest: summaryOf(res)}, nil
	}

	previous, err := call(ctx, s.policy, func(ctx context.Context) (int, error) {
		return s.codes.RecordScan(ctx, token, now)
	})
	if err != nil {
		if errors.Is(err, domain.ErrExpired) {
			return domain.ScanResult{Outcome: domain.ScanExpired, ScanCount: qr.ScanCount}, nil
		}
		return s.failed(err, "increment")
	}
	count := previous + 1

	// Every scan of a waiting reservation tries the check-in, including retries
	// after a failed first transition. The status compare-and-set admits one winner.
	if res.Status.AwaitingArrival() {
		tr, err := s.machine.ApplyTo(ctx, res, domain.EventScanned, domain.ActorSystemScan, "first qr scan")
		switch {
		case err == nil && tr.Changed:
			log.Printf("level=info msg=\"checked in\" reservation=%s", res.ID)
			return domain.ScanResult{Outcome: domain.ScanCheckedInFirst, ScanCount: count, Guest: summaryOf(res)}, nil
		case errors.Is(err, domain.ErrConflict):
			// A host check-in won the race; report the stored state.
			if fresh, loadErr := s.machine.Load(ctx, res.TenantID, res.ID); loadErr == nil {
				res = fresh
			}
		case err != nil && isTimeout(err):
			return s.failed(err, "transition")
		case err != nil && !errors.Is(err, domain.ErrIllegalTransition):
			return domain.ScanResult{}, err
		}
	}

	return domain.ScanResult{Outcome: domain.ScanAlreadyCheckedIn, ScanCount: count, Guest: summaryOf(res)}, nil
}

func (s *ScanProcessor) failed(err error, stage string) (domain.ScanResult, error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.ScanResult{Outcome: domain.ScanInvalid}, nil
	case isTimeout(err):
		log.Printf("level=warn msg=\"scan storage timeout\" stage=%s err=%v", stage, err)
		return domain.ScanResult{Outcome: domain.ScanTimeout}, nil
	}
	log.Printf("level=error msg=\"scan failed\" stage=%s err=%v", stage, err)
	return domain.ScanResult{}, err
}

func summaryOf(res *domain.Reservation) *domain.GuestSummary {
	return &domain.GuestSummary{
		CustomerName: res.CustomerName,
		GuestCount:   res.GuestCount,
		ReservedAt:   res.ReservedAt,
		CheckedInAt:  res.CheckedInAt,
	}
}
