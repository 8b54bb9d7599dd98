// Package events publishes booking lifecycle events to a message broker.
package events

import (
	"context"
	"time"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusUpdated = "booking.status_updated"
	BookingDeleted       = "booking.deleted"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	Nights     int       `json:"nights"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers booking events. Callers treat a returned error as
// non-fatal: the state change it describes has already been committed.
type Publisher interface {
	PublishBooking(ctx context.Context, event BookingEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishBooking(context.Context, BookingEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
