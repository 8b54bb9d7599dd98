package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RoomFilter fields are optional; nil means "no constraint".
// Price bounds are inclusive.
type RoomFilter struct {
	Type     *entity.RoomType
	MinPrice *float64
	MaxPrice *float64
}

// Match reports whether room satisfies every set field of f.
func (f RoomFilter) Match(room *entity.Room) bool {
	if f.Type != nil && room.Type != *f.Type {
		return false
	}
	if f.MinPrice != nil && room.PricePerNight < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && room.PricePerNight > *f.MaxPrice {
		return false
	}
	return true
}

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context, filter RoomFilter) ([]*entity.Room, error)
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, name, type, price_per_night, features, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	features := room.Features
	if features == nil {
		features = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.Name,
		string(room.Type),
		room.PricePerNight,
		features,
		room.Availability,
		room.CreatedAt,
		room.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("name", room.Name),
			zap.String("type", string(room.Type)),
		)
		return fmt.Errorf("create room %s: %w", room.Name, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `
		SELECT id, name, type, price_per_night, features, availability, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return room, nil
}

func (r *roomRepository) FindAll(ctx context.Context, filter RoomFilter) ([]*entity.Room, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, type, price_per_night, features, availability, created_at, updated_at
		FROM rooms
		WHERE 1 = 1
	`)

	args := []interface{}{}
	argCount := 1

	if filter.Type != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND type = $%d", argCount))
		args = append(args, string(*filter.Type))
		argCount++
	}
	if filter.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price_per_night >= $%d", argCount))
		args = append(args, *filter.MinPrice)
		argCount++
	}
	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price_per_night <= $%d", argCount))
		args = append(args, *filter.MaxPrice)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY created_at, id")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find rooms", zap.Error(err))
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*entity.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	var roomType string
	err := row.Scan(
		&room.ID,
		&room.Name,
		&roomType,
		&room.PricePerNight,
		&room.Features,
		&room.Availability,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.Type = entity.RoomType(roomType)
	if room.Features == nil {
		room.Features = []string{}
	}
	return &room, nil
}
