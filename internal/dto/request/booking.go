package request

// Dates accept YYYY-MM-DD or an RFC 3339 timestamp.
type CreateBookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	RoomID     string `json:"room_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
