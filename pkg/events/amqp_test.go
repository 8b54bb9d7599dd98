package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	kind       string
	durable    bool
	declareErr error
	publishErr error
	published  []published
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, name)
	f.kind = kind
	f.durable = durable
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_DeclaresDurableTopicExchange(t *testing.T) {
	ch := &fakeChannel{}
	_, err := newAMQPPublisher(ch, "hotel.bookings", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"hotel.bookings"}, ch.declared)
	assert.Equal(t, amqp.ExchangeTopic, ch.kind)
	assert.True(t, ch.durable)
}

func TestAMQPPublisher_DeclareFailureClosesChannel(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newAMQPPublisher(ch, "hotel.bookings", zap.NewNop())
	require.Error(t, err)
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishBooking(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "hotel.bookings", zap.NewNop())
	require.NoError(t, err)

	event := BookingEvent{
		Type:       BookingCreated,
		BookingID:  "b-1",
		RoomID:     "r-1",
		CustomerID: "c-1",
		Status:     "pending",
		Nights:     8,
		TotalPrice: 720,
		OccurredAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishBooking(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "hotel.bookings", got.exchange)
	assert.Equal(t, BookingCreated, got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "hotel.bookings", zap.NewNop())
	require.NoError(t, err)

	ch.publishErr = amqp.ErrClosed
	err = p.PublishBooking(context.Background(), BookingEvent{Type: BookingDeleted, BookingID: "b-2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, amqp.ErrClosed))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.PublishBooking(context.Background(), BookingEvent{Type: BookingCreated}))
	assert.NoError(t, p.Close())
}
