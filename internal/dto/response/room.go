package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type RoomResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	PricePerNight float64   `json:"price_per_night"`
	Features      []string  `json:"features"`
	Availability  bool      `json:"availability"`
	CreatedAt     time.Time `json:"created_at"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	features := room.Features
	if features == nil {
		features = []string{}
	}
	return RoomResponse{
		ID:            room.ID.String(),
		Name:          room.Name,
		Type:          string(room.Type),
		PricePerNight: room.PricePerNight,
		Features:      features,
		Availability:  room.Availability,
		CreatedAt:     room.CreatedAt,
	}
}
