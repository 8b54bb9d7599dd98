package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking/internal/data/memstore"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop()
	svc := usecase.NewService(memstore.New(log), events.NewNoopPublisher(), log)
	h, err := NewHandler(svc, log)
	require.NoError(t, err)
	return h
}

func exec(t *testing.T, h http.Handler, query string, variables map[string]any) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func mustData(t *testing.T, resp gqlResponse, into any) {
	t.Helper()
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, into))
}

func createRoom(t *testing.T, h http.Handler, name, roomType string, price float64) string {
	t.Helper()
	var data struct {
		CreateRoom struct {
			ID           string   `json:"id"`
			Features     []string `json:"features"`
			Availability bool     `json:"availability"`
		} `json:"createRoom"`
	}
	mustData(t, exec(t, h, `mutation($name: String!, $type: String!, $price: Float!) {
		createRoom(name: $name, type: $type, pricePerNight: $price, features: ["wifi", "minibar"]) {
			id features availability
		}
	}`, map[string]any{"name": name, "type": roomType, "price": price}), &data)

	assert.True(t, data.CreateRoom.Availability)
	assert.Equal(t, []string{"wifi", "minibar"}, data.CreateRoom.Features)
	return data.CreateRoom.ID
}

func createCustomer(t *testing.T, h http.Handler) string {
	t.Helper()
	var data struct {
		CreateCustomer struct {
			ID string `json:"id"`
		} `json:"createCustomer"`
	}
	mustData(t, exec(t, h, `mutation {
		createCustomer(name: "Ana", email: "ana@example.com", phone: "600000000") { id }
	}`, nil), &data)
	return data.CreateCustomer.ID
}

const createBookingMutation = `mutation($customerId: ID!, $roomId: ID!, $start: String!, $end: String!) {
	createBooking(customerId: $customerId, roomId: $roomId, startDate: $start, endDate: $end) {
		id nights totalPrice status startDate endDate
		room { id availability }
		customer { id email }
	}
}`

func TestGraphQL_BookingLifecycle(t *testing.T) {
	h := setupHandler(t)
	roomID := createRoom(t, h, "Sea View", "suite", 100)
	customerID := createCustomer(t, h)

	vars := map[string]any{"customerId": customerID, "roomId": roomID, "start": "2024-06-01", "end": "2024-06-09"}

	var created struct {
		CreateBooking struct {
			ID         string  `json:"id"`
			Nights     int     `json:"nights"`
			TotalPrice float64 `json:"totalPrice"`
			Status     string  `json:"status"`
			StartDate  string  `json:"startDate"`
			Room       struct {
				ID           string `json:"id"`
				Availability bool   `json:"availability"`
			} `json:"room"`
			Customer struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"createBooking"`
	}
	mustData(t, exec(t, h, createBookingMutation, vars), &created)

	booking := created.CreateBooking
	assert.Equal(t, 8, booking.Nights)
	assert.InDelta(t, 720.0, booking.TotalPrice, 1e-9)
	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, "2024-06-01", booking.StartDate)
	assert.Equal(t, roomID, booking.Room.ID)
	assert.False(t, booking.Room.Availability)
	assert.Equal(t, "ana@example.com", booking.Customer.Email)

	resp := exec(t, h, createBookingMutation, vars)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, codeUnavailable, resp.Errors[0].Extensions["code"])

	var updated struct {
		UpdateBooking struct {
			Status string `json:"status"`
			Room   struct {
				Availability bool `json:"availability"`
			} `json:"room"`
		} `json:"updateBooking"`
	}
	mustData(t, exec(t, h, `mutation($id: ID!) {
		updateBooking(bookingId: $id, status: "cancelled") { status room { availability } }
	}`, map[string]any{"id": booking.ID}), &updated)
	assert.Equal(t, "cancelled", updated.UpdateBooking.Status)
	assert.True(t, updated.UpdateBooking.Room.Availability)

	var fetched struct {
		Booking struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Nights int    `json:"nights"`
		} `json:"booking"`
	}
	mustData(t, exec(t, h, `query($id: ID!) { booking(id: $id) { id status nights } }`, map[string]any{"id": booking.ID}), &fetched)
	assert.Equal(t, booking.ID, fetched.Booking.ID)
	assert.Equal(t, "cancelled", fetched.Booking.Status)
	assert.Equal(t, 8, fetched.Booking.Nights)

	var listed struct {
		Bookings []struct {
			ID string `json:"id"`
		} `json:"bookings"`
	}
	mustData(t, exec(t, h, `{ bookings(status: "cancelled") { id } }`, nil), &listed)
	require.Len(t, listed.Bookings, 1)

	var deleted struct {
		DeleteBooking string `json:"deleteBooking"`
	}
	mustData(t, exec(t, h, `mutation($id: ID!) { deleteBooking(bookingId: $id) }`, map[string]any{"id": booking.ID}), &deleted)
	assert.Equal(t, fmt.Sprintf("Booking with ID %s has been successfully deleted.", booking.ID), deleted.DeleteBooking)

	mustData(t, exec(t, h, `{ bookings { id } }`, nil), &listed)
	assert.Empty(t, listed.Bookings)
}

func TestGraphQL_RoomsFilter(t *testing.T) {
	h := setupHandler(t)
	createRoom(t, h, "Cheap", "single", 80)
	createRoom(t, h, "Mid", "double", 100)
	createRoom(t, h, "Upper", "double", 200)
	createRoom(t, h, "Top", "suite", 400)

	var data struct {
		Rooms []struct {
			Name          string  `json:"name"`
			PricePerNight float64 `json:"pricePerNight"`
		} `json:"rooms"`
	}
	mustData(t, exec(t, h, `{ rooms(minPrice: 100, maxPrice: 200) { name pricePerNight } }`, nil), &data)
	require.Len(t, data.Rooms, 2)
	assert.Equal(t, "Mid", data.Rooms[0].Name)
	assert.Equal(t, "Upper", data.Rooms[1].Name)

	mustData(t, exec(t, h, `{ rooms(type: "suite") { name pricePerNight } }`, nil), &data)
	require.Len(t, data.Rooms, 1)
	assert.Equal(t, "Top", data.Rooms[0].Name)
}

func TestGraphQL_ErrorCodes(t *testing.T) {
	h := setupHandler(t)
	roomID := createRoom(t, h, "Sea View", "suite", 100)
	customerID := createCustomer(t, h)

	tests := []struct {
		name      string
		query     string
		variables map[string]any
		code      string
	}{
		{
			name:  "missing booking",
			query: `mutation { updateBooking(bookingId: "2f1c1f8e-3b9e-4a52-9d34-1bb8b6c1c3aa", status: "confirmed") { id } }`,
			code:  codeNotFound,
		},
		{
			name:  "get missing booking",
			query: `{ booking(id: "2f1c1f8e-3b9e-4a52-9d34-1bb8b6c1c3aa") { id } }`,
			code:  codeNotFound,
		},
		{
			name:  "unknown status",
			query: `{ bookings(status: "archived") { id } }`,
			code:  codeValidation,
		},
		{
			name:      "end before start",
			query:     createBookingMutation,
			variables: map[string]any{"customerId": customerID, "roomId": roomID, "start": "2024-06-05", "end": "2024-06-01"},
			code:      codeValidation,
		},
		{
			name:      "unknown room",
			query:     createBookingMutation,
			variables: map[string]any{"customerId": customerID, "roomId": "missing", "start": "2024-06-01", "end": "2024-06-02"},
			code:      codeNotFound,
		},
		{
			name:  "invalid room type",
			query: `mutation { createRoom(name: "X", type: "villa", pricePerNight: 10) { id } }`,
			code:  codeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := exec(t, h, tt.query, tt.variables)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.code, resp.Errors[0].Extensions["code"])
		})
	}
}

func TestToResolverError_HidesInternalDetails(t *testing.T) {
	err := toResolverError(errors.New("pq: connection refused"))
	assert.Equal(t, codeInternal, err.code)
	assert.Equal(t, "internal server error", err.Error())

	err = toResolverError(fmt.Errorf("room abc %w", usecase.ErrNotFound))
	assert.Equal(t, codeNotFound, err.Extensions()["code"])
	assert.Equal(t, "room abc not found", err.Error())
}
