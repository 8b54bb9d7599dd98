package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", customerHandler.ListCustomers)
		r.Post("/", customerHandler.CreateCustomer)
	})
}
