package mongostore

import (
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
)

const (
	roomCollection     = "rooms"
	customerCollection = "customers"
	bookingCollection  = "bookings"
)

// Ids are stored as UUID text so records stay portable across backends.
type roomDocument struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Type          string    `bson:"type"`
	PricePerNight float64   `bson:"pricePerNight"`
	Features      []string  `bson:"features"`
	Availability  bool      `bson:"availability"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

type customerDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type bookingDocument struct {
	ID         string    `bson:"_id"`
	CustomerID string    `bson:"customerId"`
	RoomID     string    `bson:"roomId"`
	StartDate  time.Time `bson:"startDate"`
	EndDate    time.Time `bson:"endDate"`
	Nights     int       `bson:"nights"`
	TotalPrice float64   `bson:"totalPrice"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func newRoomDocument(room *entity.Room) roomDocument {
	features := room.Features
	if features == nil {
		features = []string{}
	}
	return roomDocument{
		ID:            room.ID.String(),
		Name:          room.Name,
		Type:          string(room.Type),
		PricePerNight: room.PricePerNight,
		Features:      features,
		Availability:  room.Availability,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}
}

func (d roomDocument) toEntity() (*entity.Room, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("room document id %q: %w", d.ID, err)
	}
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return &entity.Room{
		Base:          entity.Base{ID: id, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()},
		Name:          d.Name,
		Type:          entity.RoomType(d.Type),
		PricePerNight: d.PricePerNight,
		Features:      features,
		Availability:  d.Availability,
	}, nil
}

func newCustomerDocument(customer *entity.Customer) customerDocument {
	return customerDocument{
		ID:        customer.ID.String(),
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

func (d customerDocument) toEntity() (*entity.Customer, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("customer document id %q: %w", d.ID, err)
	}
	return &entity.Customer{
		Base:  entity.Base{ID: id, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()},
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
	}, nil
}

func newBookingDocument(booking *entity.Booking) bookingDocument {
	return bookingDocument{
		ID:         booking.ID.String(),
		CustomerID: booking.CustomerID.String(),
		RoomID:     booking.RoomID.String(),
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		Nights:     booking.Nights,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}

func (d bookingDocument) toEntity() (*entity.Booking, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("booking document id %q: %w", d.ID, err)
	}
	customerID, err := uuid.Parse(d.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("booking %s customer id %q: %w", d.ID, d.CustomerID, err)
	}
	roomID, err := uuid.Parse(d.RoomID)
	if err != nil {
		return nil, fmt.Errorf("booking %s room id %q: %w", d.ID, d.RoomID, err)
	}
	return &entity.Booking{
		Base:       entity.Base{ID: id, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()},
		CustomerID: customerID,
		RoomID:     roomID,
		StartDate:  d.StartDate.UTC(),
		EndDate:    d.EndDate.UTC(),
		Nights:     d.Nights,
		TotalPrice: d.TotalPrice,
		Status:     entity.BookingStatus(d.Status),
	}, nil
}
