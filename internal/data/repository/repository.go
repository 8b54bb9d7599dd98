package repository

import (
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

// Repository groups the stores the services depend on. Postgres, MongoDB
// and in-memory backends all produce one.
type Repository struct {
	Room     RoomRepository
	Customer CustomerRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Room:     NewRoomRepository(db, log),
		Customer: NewCustomerRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
