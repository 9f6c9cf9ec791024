package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/adapter/events"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type published struct {
	subject string
	payload []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, msg []byte) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{subject: subject, payload: msg})
	return nil
}

func entry() domain.AuditEntry {
	return domain.AuditEntry{
		ID:            uuid.New(),
		TenantID:      "venue-1",
		ReservationID: uuid.New(),
		Event:         domain.EventScanned,
		Actor:         domain.ActorSystemScan,
		FromStatus:    domain.ReservationConfirmed,
		ToStatus:      domain.ReservationCheckedIn,
		OccurredAt:    time.Date(2024, 3, 15, 22, 5, 0, 0, time.UTC),
	}
}

func TestAuditPublisher_PublishesPerTenantSubject(t *testing.T) {
	pub := &fakePublisher{}
	e := entry()

	err := events.NewAuditPublisher(pub).Record(context.Background(), e)

	require.NoError(t, err)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "reservations.status.venue-1", pub.messages[0].subject)

	body := string(pub.messages[0].payload)
	assert.Equal(t, e.ReservationID.String(), gjson.Get(body, "reservation_id").String())
	assert.Equal(t, "CHECKED_IN", gjson.Get(body, "to_status").String())
	assert.False(t, gjson.Get(body, "reason").Exists())
}

func TestAuditPublisher_WrapsPublishError(t *testing.T) {
	cause := errors.New("nats: connection closed")
	err := events.NewAuditPublisher(&fakePublisher{err: cause}).Record(context.Background(), entry())

	assert.ErrorIs(t, err, cause)
}

func TestAuditFanout_SecondaryFailureIsSwallowed(t *testing.T) {
	primary := mocks.NewAuditSink(t)
	e := entry()
	primary.On("Record", mock.Anything, e).Return(nil)

	err := events.NewAuditFanout(primary, events.NewAuditPublisher(&fakePublisher{err: errors.New("down")})).Record(context.Background(), e)

	assert.NoError(t, err)
}

func TestAuditFanout_PrimaryFailureStopsFanout(t *testing.T) {
	primary := mocks.NewAuditSink(t)
	pub := &fakePublisher{}
	e := entry()
	primary.On("Record", mock.Anything, e).Return(errors.New("db down"))

	err := events.NewAuditFanout(primary, events.NewAuditPublisher(pub)).Record(context.Background(), e)

	assert.Error(t, err)
	assert.Empty(t, pub.messages)
}
