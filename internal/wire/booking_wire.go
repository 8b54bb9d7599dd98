package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings) // ?status=
		r.Post("/", bookingHandler.CreateBooking)

		r.Get("/{id}", bookingHandler.GetBooking)

		// Cancelling or deleting a booking frees its room.
		r.Patch("/{id}", bookingHandler.UpdateBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
