package graph

import (
	"time"

	"hotel-booking/internal/dto/response"

	graphql "github.com/graph-gophers/graphql-go"
)

type roomResolver struct {
	r *response.RoomResponse
}

func (r *roomResolver) ID() graphql.ID         { return graphql.ID(r.r.ID) }
func (r *roomResolver) Name() string           { return r.r.Name }
func (r *roomResolver) Type() string           { return r.r.Type }
func (r *roomResolver) PricePerNight() float64 { return r.r.PricePerNight }
func (r *roomResolver) Availability() bool     { return r.r.Availability }

func (r *roomResolver) Features() []*string {
	features := make([]*string, len(r.r.Features))
	for i := range r.r.Features {
		features[i] = &r.r.Features[i]
	}
	return features
}

type customerResolver struct {
	c *response.CustomerResponse
}

func (c *customerResolver) ID() graphql.ID { return graphql.ID(c.c.ID) }
func (c *customerResolver) Name() string   { return c.c.Name }
func (c *customerResolver) Email() string  { return c.c.Email }
func (c *customerResolver) Phone() string  { return c.c.Phone }

type bookingResolver struct {
	b *response.BookingResponse
}

func (b *bookingResolver) ID() graphql.ID      { return graphql.ID(b.b.ID) }
func (b *bookingResolver) StartDate() string   { return b.b.StartDate }
func (b *bookingResolver) EndDate() string     { return b.b.EndDate }
func (b *bookingResolver) Nights() int32       { return int32(b.b.Nights) }
func (b *bookingResolver) TotalPrice() float64 { return b.b.TotalPrice }
func (b *bookingResolver) Status() string      { return b.b.Status }
func (b *bookingResolver) CreatedAt() string   { return b.b.CreatedAt.Format(time.RFC3339) }
func (b *bookingResolver) UpdatedAt() string   { return b.b.UpdatedAt.Format(time.RFC3339) }

func (b *bookingResolver) Customer() *customerResolver {
	if b.b.Customer == nil {
		return nil
	}
	return &customerResolver{c: b.b.Customer}
}

func (b *bookingResolver) Room() *roomResolver {
	if b.b.Room == nil {
		return nil
	}
	return &roomResolver{r: b.b.Room}
}
