package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/events"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, status string) ([]*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)

	// DeleteBooking frees the room regardless of the booking status and
	// returns a confirmation message.
	DeleteBooking(ctx context.Context, bookingID string) (string, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher events.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %s", ErrValidation, err.Error())
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %s", ErrValidation, err.Error())
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", ErrValidation)
	}

	roomID, err := parseID("room", req.RoomID)
	if err != nil {
		return nil, err
	}
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s %w", req.RoomID, ErrNotFound)
	}
	if !room.Availability {
		return nil, fmt.Errorf("room %s %w", req.RoomID, ErrUnavailable)
	}

	customerID, err := parseID("customer", req.CustomerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s %w", req.CustomerID, ErrNotFound)
	}

	nights := CountNights(startDate, endDate)
	now := time.Now().UTC()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: customer.ID,
		RoomID:     room.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		Nights:     nights,
		TotalPrice: QuotePrice(nights, room.PricePerNight),
		Status:     entity.BookingStatusPending,
	}

	// The room may have been taken since it was read above; the store
	// re-checks availability atomically.
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.log.Warn("Room taken by a concurrent booking", zap.String("room_id", req.RoomID))
			return nil, fmt.Errorf("room %s %w", req.RoomID, ErrUnavailable)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("room_id", req.RoomID),
			zap.String("customer_id", req.CustomerID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room_id", req.RoomID),
		zap.Int("nights", nights),
		zap.Float64("total_price", booking.TotalPrice),
	)
	s.publish(ctx, events.BookingCreated, booking)

	room.Availability = false
	resp := response.BookingToResponse(booking, customer, room)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s %w", bookingID, ErrNotFound)
	}

	return newRefResolver(s.repo).resolve(ctx, booking)
}

func (s *bookingService) ListBookings(ctx context.Context, status string) ([]*response.BookingResponse, error) {
	var filter *entity.BookingStatus
	if status != "" {
		st := entity.BookingStatus(status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: status must be one of: pending, confirmed, cancelled", ErrValidation)
		}
		filter = &st
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	refs := newRefResolver(s.repo)
	result := make([]*response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp, err := refs.resolve(ctx, booking)
		if err != nil {
			s.log.Error("Failed to resolve booking references",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			return nil, err
		}
		result = append(result, resp)
	}

	return result, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatus(req.Status))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("booking %s %w", bookingID, ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", req.Status),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status),
	)
	s.publish(ctx, events.BookingStatusUpdated, booking)

	return newRefResolver(s.repo).resolve(ctx, booking)
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) (string, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return "", err
	}

	booking, err := s.repo.Booking.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("booking %s %w", bookingID, ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", bookingID))
		return "", fmt.Errorf("delete booking: %w", err)
	}

	s.publish(ctx, events.BookingDeleted, booking)

	return fmt.Sprintf("Booking with ID %s has been successfully deleted.", bookingID), nil
}

// publish never fails the caller; the booking change is already stored.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *entity.Booking) {
	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID.String(),
		RoomID:     booking.RoomID.String(),
		CustomerID: booking.CustomerID.String(),
		Status:     string(booking.Status),
		Nights:     booking.Nights,
		TotalPrice: booking.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishBooking(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("booking_id", event.BookingID),
		)
	}
}

// A malformed id can never match a record.
func parseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %s %w", kind, value, ErrNotFound)
	}
	return id, nil
}

// refResolver looks up the room and customer of each booking once per
// request. Missing references resolve to nil.
type refResolver struct {
	repo      *repository.Repository
	rooms     map[uuid.UUID]*entity.Room
	customers map[uuid.UUID]*entity.Customer
}

func newRefResolver(repo *repository.Repository) *refResolver {
	return &refResolver{
		repo:      repo,
		rooms:     make(map[uuid.UUID]*entity.Room),
		customers: make(map[uuid.UUID]*entity.Customer),
	}
}

func (r *refResolver) resolve(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	room, ok := r.rooms[booking.RoomID]
	if !ok {
		var err error
		room, err = r.repo.Room.FindByID(ctx, booking.RoomID)
		if err != nil {
			return nil, fmt.Errorf("find room %s: %w", booking.RoomID.String(), err)
		}
		r.rooms[booking.RoomID] = room
	}

	customer, ok := r.customers[booking.CustomerID]
	if !ok {
		var err error
		customer, err = r.repo.Customer.FindByID(ctx, booking.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("find customer %s: %w", booking.CustomerID.String(), err)
		}
		r.customers[booking.CustomerID] = customer
	}

	resp := response.BookingToResponse(booking, customer, room)
	return &resp, nil
}
