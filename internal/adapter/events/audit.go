package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

// StatusSubject carries one message per reservation status change.
const StatusSubject = "reservations.status"

// AuditPublisher broadcasts audit entries so other services (messaging,
// loyalty) can react to check-ins and no-shows.
type AuditPublisher struct {
	publisher Publisher
	subject   string
}

func NewAuditPublisher(publisher Publisher) *AuditPublisher {
	return &AuditPublisher{publisher: publisher, subject: StatusSubject}
}

func (p *AuditPublisher) Record(ctx context.Context, entry domain.AuditEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}
	subject := fmt.Sprintf("%s.%s", p.subject, entry.TenantID)
	if err := p.publisher.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("failed to publish audit entry: %w", err)
	}
	return nil
}

// AuditFanout writes to a primary sink and mirrors to secondary ones. Only
// the primary's failure is reported.
type AuditFanout struct {
	primary   ports.AuditSink
	secondary []ports.AuditSink
}

func NewAuditFanout(primary ports.AuditSink, secondary ...ports.AuditSink) *AuditFanout {
	return &AuditFanout{primary: primary, secondary: secondary}
}

func (f *AuditFanout) Record(ctx context.Context, entry domain.AuditEntry) error {
	if err := f.primary.Record(ctx, entry); err != nil {
		return err
	}
	for _, sink := range f.secondary {
		if err := sink.Record(ctx, entry); err != nil {
			log.Printf("level=warn msg=\"secondary audit sink failed\" reservation=%s event=%s err=%v", entry.ReservationID, entry.Event, err)
		}
	}
	return nil
}
