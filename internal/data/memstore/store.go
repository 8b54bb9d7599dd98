// Package memstore keeps rooms, customers and bookings in process memory.
// It backs local runs (STORE_DRIVER=memory) and the service tests.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store guards all three collections with one mutex so a booking unit of
// work sees a consistent room.
type Store struct {
	mu  sync.Mutex
	log *zap.Logger

	rooms     map[uuid.UUID]*entity.Room
	roomOrder []uuid.UUID

	customers     map[uuid.UUID]*entity.Customer
	customerOrder []uuid.UUID

	bookings     map[uuid.UUID]*entity.Booking
	bookingOrder []uuid.UUID
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		log:       log.With(zap.String("repository", "memory")),
		rooms:     make(map[uuid.UUID]*entity.Room),
		customers: make(map[uuid.UUID]*entity.Customer),
		bookings:  make(map[uuid.UUID]*entity.Booking),
	}
}

// New returns a Repository backed by a fresh Store.
func New(log *zap.Logger) *repository.Repository {
	return NewStore(log).Repository()
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		Room:     &roomRepo{s},
		Customer: &customerRepo{s},
		Booking:  &bookingRepo{s},
	}
}

func copyRoom(r *entity.Room) *entity.Room {
	c := *r
	c.Features = append([]string{}, r.Features...)
	return &c
}

func copyCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	return &cp
}

func copyBooking(b *entity.Booking) *entity.Booking {
	c := *b
	return &c
}

type roomRepo struct{ s *Store }

func (r *roomRepo) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[room.ID]; ok {
		return fmt.Errorf("create room %s: %w", room.ID.String(), repository.ErrConflict)
	}
	r.s.rooms[room.ID] = copyRoom(room)
	r.s.roomOrder = append(r.s.roomOrder, room.ID)
	return nil
}

func (r *roomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return copyRoom(room), nil
}

func (r *roomRepo) FindAll(_ context.Context, filter repository.RoomFilter) ([]*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rooms := []*entity.Room{}
	for _, id := range r.s.roomOrder {
		room := r.s.rooms[id]
		if filter.Match(room) {
			rooms = append(rooms, copyRoom(room))
		}
	}
	return rooms, nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.ID]; ok {
		return fmt.Errorf("create customer %s: %w", customer.ID.String(), repository.ErrConflict)
	}
	r.s.customers[customer.ID] = copyCustomer(customer)
	r.s.customerOrder = append(r.s.customerOrder, customer.ID)
	return nil
}

func (r *customerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	customer, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return copyCustomer(customer), nil
}

func (r *customerRepo) FindAll(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	customers := make([]*entity.Customer, 0, len(r.s.customerOrder))
	for _, id := range r.s.customerOrder {
		customers = append(customers, copyCustomer(r.s.customers[id]))
	}
	return customers, nil
}

type bookingRepo struct{ s *Store }

func (r *bookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[booking.RoomID]
	if !ok || !room.Availability {
		return fmt.Errorf("hold room %s: %w", booking.RoomID.String(), repository.ErrConflict)
	}

	room.Availability = false
	room.UpdatedAt = booking.CreatedAt
	r.s.bookings[booking.ID] = copyBooking(booking)
	r.s.bookingOrder = append(r.s.bookingOrder, booking.ID)
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(booking), nil
}

func (r *bookingRepo) FindAll(_ context.Context, status *entity.BookingStatus) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bookings := []*entity.Booking{}
	for _, id := range r.s.bookingOrder {
		booking := r.s.bookings[id]
		if status != nil && booking.Status != *status {
			continue
		}
		bookings = append(bookings, copyBooking(booking))
	}
	return bookings, nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id.String(), repository.ErrNotFound)
	}

	now := time.Now().UTC()
	booking.Status = status
	booking.UpdatedAt = now
	if status == entity.BookingStatusCancelled {
		r.s.releaseRoomLocked(booking.RoomID, now)
	}

	return copyBooking(booking), nil
}

func (r *bookingRepo) Delete(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id.String(), repository.ErrNotFound)
	}

	r.s.releaseRoomLocked(booking.RoomID, time.Now().UTC())
	delete(r.s.bookings, id)
	for i, bid := range r.s.bookingOrder {
		if bid == id {
			r.s.bookingOrder = append(r.s.bookingOrder[:i], r.s.bookingOrder[i+1:]...)
			break
		}
	}

	r.s.log.Debug("Booking deleted", zap.String("booking_id", id.String()))
	return booking, nil
}

// releaseRoomLocked requires s.mu to be held.
func (s *Store) releaseRoomLocked(roomID uuid.UUID, at time.Time) {
	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	room.Availability = true
	room.UpdatedAt = at
}
