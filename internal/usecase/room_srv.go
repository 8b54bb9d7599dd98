package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	ListRooms(ctx context.Context, req *request.RoomFilterRequest) ([]*response.RoomResponse, error)
}

type roomService struct {
	roomRepo repository.RoomRepository
	log      *zap.Logger
}

func NewRoomService(roomRepo repository.RoomRepository, log *zap.Logger) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		log:      log.With(zap.String("service", "room")),
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	features := req.Features
	if features == nil {
		features = []string{}
	}

	now := time.Now().UTC()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Type:          entity.RoomType(req.Type),
		PricePerNight: req.PricePerNight,
		Features:      features,
		Availability:  true,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		s.log.Error("Failed to create room", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("type", req.Type),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) ListRooms(ctx context.Context, req *request.RoomFilterRequest) ([]*response.RoomResponse, error) {
	if req == nil {
		req = &request.RoomFilterRequest{}
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := repository.RoomFilter{
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
	if req.Type != nil {
		roomType := entity.RoomType(*req.Type)
		filter.Type = &roomType
	}

	rooms, err := s.roomRepo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	result := make([]*response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp := response.RoomToResponse(room)
		result = append(result, &resp)
	}

	return result, nil
}
