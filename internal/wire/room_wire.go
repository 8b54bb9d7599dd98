package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler) {
	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", roomHandler.ListRooms)   // ?type=&min_price=&max_price=
		r.Post("/", roomHandler.CreateRoom) // new rooms start available
	})
}
