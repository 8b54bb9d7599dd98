package request

type CreateRoomRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=100"`
	Type          string   `json:"type" validate:"required,oneof=single double suite"`
	PricePerNight float64  `json:"price_per_night" validate:"gt=0"`
	Features      []string `json:"features,omitempty" validate:"dive,required,max=50"`
}

// RoomFilterRequest carries the optional listing filters; nil means unset.
type RoomFilterRequest struct {
	Type     *string  `validate:"omitempty,oneof=single double suite"`
	MinPrice *float64 `validate:"omitempty,gte=0"`
	MaxPrice *float64 `validate:"omitempty,gte=0"`
}
