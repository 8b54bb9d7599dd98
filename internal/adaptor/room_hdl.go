package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms?type=&min_price=&max_price=
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.RoomFilterRequest{}

	if roomType := query.Get("type"); roomType != "" {
		req.Type = &roomType
	}

	minPrice, err := utils.ParseOptionalFloat(query.Get("min_price"))
	if err != nil {
		utils.ResponseBadRequest(w, "min_price: "+err.Error(), nil)
		return
	}
	maxPrice, err := utils.ParseOptionalFloat(query.Get("max_price"))
	if err != nil {
		utils.ResponseBadRequest(w, "max_price: "+err.Error(), nil)
		return
	}
	req.MinPrice = minPrice
	req.MaxPrice = maxPrice

	rooms, err := h.service.ListRooms(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// CreateRoom handles POST /api/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}
