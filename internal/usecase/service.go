package usecase

import (
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/events"

	"go.uber.org/zap"
)

type Service struct {
	Room     RoomService
	Customer CustomerService
	Booking  BookingService
}

func NewService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{
		Room:     NewRoomService(repo.Room, log),
		Customer: NewCustomerService(repo.Customer, log),
		Booking:  NewBookingService(repo, publisher, log),
	}
}
