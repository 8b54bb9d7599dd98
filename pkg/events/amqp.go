package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotel-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpPublisher struct {
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	log      *zap.Logger
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
// Events are routed by their Type.
func NewAMQPPublisher(config utils.RabbitMQConfig, log *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	p, err := newAMQPPublisher(ch, config.Exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newAMQPPublisher(ch amqpChannel, exchange string, log *zap.Logger) (*amqpPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &amqpPublisher{
		ch:       ch,
		exchange: exchange,
		log:      log.With(zap.String("publisher", "amqp")),
	}, nil
}

func (p *amqpPublisher) PublishBooking(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.BookingID,
		Type:         event.Type,
		Body:         body,
	}

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		p.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", event.Type),
			zap.String("booking_id", event.BookingID),
		)
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}

	p.log.Debug("Booking event published",
		zap.String("type", event.Type),
		zap.String("booking_id", event.BookingID),
	)
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); connErr != nil && err == nil {
			err = connErr
		}
	}
	return err
}
