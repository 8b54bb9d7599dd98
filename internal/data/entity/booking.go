package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking references its room and customer; it does not own them.
// Nights and TotalPrice are fixed when the booking is created.
type Booking struct {
	Base
	CustomerID uuid.UUID     `db:"customer_id"`
	RoomID     uuid.UUID     `db:"room_id"`
	StartDate  time.Time     `db:"start_date"`
	EndDate    time.Time     `db:"end_date"`
	Nights     int           `db:"nights"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}
