package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

// BookingResponse embeds the room and customer; either is nil when the
// referenced record no longer exists.
type BookingResponse struct {
	ID         string            `json:"id"`
	Customer   *CustomerResponse `json:"customer"`
	Room       *RoomResponse     `json:"room"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Nights     int               `json:"nights"`
	TotalPrice float64           `json:"total_price"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking, customer *entity.Customer, room *entity.Room) BookingResponse {
	resp := BookingResponse{
		ID:         booking.ID.String(),
		StartDate:  utils.FormatDate(booking.StartDate),
		EndDate:    utils.FormatDate(booking.EndDate),
		Nights:     booking.Nights,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}

	if customer != nil {
		c := CustomerToResponse(customer)
		resp.Customer = &c
	}
	if room != nil {
		r := RoomToResponse(room)
		resp.Room = &r
	}

	return resp
}
