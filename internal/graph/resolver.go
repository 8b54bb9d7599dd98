// Package graph exposes the booking services as a GraphQL endpoint.
package graph

import (
	"context"
	"fmt"
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/usecase"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"
)

// Resolver is the root of the query and mutation types.
type Resolver struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewResolver(service *usecase.Service, log *zap.Logger) *Resolver {
	return &Resolver{
		service: service,
		log:     log.With(zap.String("handler", "graphql")),
	}
}

// NewSchema parses the schema and binds it to the resolver tree.
func NewSchema(service *usecase.Service, log *zap.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, NewResolver(service, log))
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

// NewHandler serves GraphQL over HTTP POST.
func NewHandler(service *usecase.Service, log *zap.Logger) (http.Handler, error) {
	schema, err := NewSchema(service, log)
	if err != nil {
		return nil, err
	}
	return &relay.Handler{Schema: schema}, nil
}

func (r *Resolver) fail(operation string, err error) error {
	gqlErr := toResolverError(err)
	if gqlErr.code == codeInternal {
		r.log.Error("Failed to "+operation, zap.Error(err))
	} else {
		r.log.Warn(operation+" failed", zap.Error(err))
	}
	return gqlErr
}

// ------------- Queries -------------

type roomsArgs struct {
	Type     *string
	MinPrice *float64
	MaxPrice *float64
}

func (r *Resolver) Rooms(ctx context.Context, args roomsArgs) ([]*roomResolver, error) {
	rooms, err := r.service.Room.ListRooms(ctx, &request.RoomFilterRequest{
		Type:     args.Type,
		MinPrice: args.MinPrice,
		MaxPrice: args.MaxPrice,
	})
	if err != nil {
		return nil, r.fail("list rooms", err)
	}

	result := make([]*roomResolver, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, &roomResolver{r: room})
	}
	return result, nil
}

func (r *Resolver) Customers(ctx context.Context) ([]*customerResolver, error) {
	customers, err := r.service.Customer.ListCustomers(ctx)
	if err != nil {
		return nil, r.fail("list customers", err)
	}

	result := make([]*customerResolver, 0, len(customers))
	for _, customer := range customers {
		result = append(result, &customerResolver{c: customer})
	}
	return result, nil
}

type bookingsArgs struct {
	Status *string
}

func (r *Resolver) Bookings(ctx context.Context, args bookingsArgs) ([]*bookingResolver, error) {
	status := ""
	if args.Status != nil {
		status = *args.Status
	}

	bookings, err := r.service.Booking.ListBookings(ctx, status)
	if err != nil {
		return nil, r.fail("list bookings", err)
	}

	return bookingResolvers(bookings), nil
}

type bookingArgs struct {
	ID graphql.ID
}

func (r *Resolver) Booking(ctx context.Context, args bookingArgs) (*bookingResolver, error) {
	booking, err := r.service.Booking.GetBooking(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail("get booking", err)
	}
	return &bookingResolver{b: booking}, nil
}

func bookingResolvers(bookings []*response.BookingResponse) []*bookingResolver {
	result := make([]*bookingResolver, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, &bookingResolver{b: booking})
	}
	return result
}

// ------------- Mutations -------------

type createRoomArgs struct {
	Name          string
	Type          string
	PricePerNight float64
	Features      *[]*string
}

func (r *Resolver) CreateRoom(ctx context.Context, args createRoomArgs) (*roomResolver, error) {
	req := &request.CreateRoomRequest{
		Name:          args.Name,
		Type:          args.Type,
		PricePerNight: args.PricePerNight,
		Features:      []string{},
	}
	if args.Features != nil {
		for _, feature := range *args.Features {
			if feature != nil {
				req.Features = append(req.Features, *feature)
			}
		}
	}

	room, err := r.service.Room.CreateRoom(ctx, req)
	if err != nil {
		return nil, r.fail("create room", err)
	}
	return &roomResolver{r: room}, nil
}

type createCustomerArgs struct {
	Name  string
	Email string
	Phone string
}

func (r *Resolver) CreateCustomer(ctx context.Context, args createCustomerArgs) (*customerResolver, error) {
	customer, err := r.service.Customer.CreateCustomer(ctx, &request.CreateCustomerRequest{
		Name:  args.Name,
		Email: args.Email,
		Phone: args.Phone,
	})
	if err != nil {
		return nil, r.fail("create customer", err)
	}
	return &customerResolver{c: customer}, nil
}

type createBookingArgs struct {
	CustomerID graphql.ID
	RoomID     graphql.ID
	StartDate  string
	EndDate    string
}

func (r *Resolver) CreateBooking(ctx context.Context, args createBookingArgs) (*bookingResolver, error) {
	booking, err := r.service.Booking.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: string(args.CustomerID),
		RoomID:     string(args.RoomID),
		StartDate:  args.StartDate,
		EndDate:    args.EndDate,
	})
	if err != nil {
		return nil, r.fail("create booking", err)
	}
	return &bookingResolver{b: booking}, nil
}

type updateBookingArgs struct {
	BookingID graphql.ID
	Status    string
}

func (r *Resolver) UpdateBooking(ctx context.Context, args updateBookingArgs) (*bookingResolver, error) {
	booking, err := r.service.Booking.UpdateBookingStatus(ctx, string(args.BookingID), &request.UpdateBookingRequest{
		Status: args.Status,
	})
	if err != nil {
		return nil, r.fail("update booking", err)
	}
	return &bookingResolver{b: booking}, nil
}

type deleteBookingArgs struct {
	BookingID graphql.ID
}

func (r *Resolver) DeleteBooking(ctx context.Context, args deleteBookingArgs) (*string, error) {
	message, err := r.service.Booking.DeleteBooking(ctx, string(args.BookingID))
	if err != nil {
		return nil, r.fail("delete booking", err)
	}
	return &message, nil
}
