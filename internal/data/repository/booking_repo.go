package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create marks the booking's room unavailable and inserts the booking as
	// one unit. It returns ErrConflict when the room is not available at the
	// moment of the write; nothing is persisted in that case.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, status *entity.BookingStatus) ([]*entity.Booking, error)

	// UpdateStatus sets the status and, for cancelled, makes the room
	// available again. Returns ErrNotFound for an unknown booking.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)

	// Delete makes the referenced room available (if it still exists) and
	// removes the booking. Returns the removed booking or ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
}

const bookingColumns = `id, customer_id, room_id, start_date, end_date, nights, total_price, status, created_at, updated_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		// Conditional hold: only one writer can flip availability from true.
		result, err := tx.Exec(ctx,
			`UPDATE rooms SET availability = FALSE, updated_at = $2 WHERE id = $1 AND availability = TRUE`,
			booking.RoomID, booking.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("hold room %s: %w", booking.RoomID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("hold room %s: %w", booking.RoomID.String(), ErrConflict)
		}

		query := `
			INSERT INTO bookings (` + bookingColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err = tx.Exec(ctx, query,
			booking.ID,
			booking.CustomerID,
			booking.RoomID,
			booking.StartDate,
			booking.EndDate,
			booking.Nights,
			booking.TotalPrice,
			string(booking.Status),
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("room_id", booking.RoomID.String()),
				zap.String("customer_id", booking.CustomerID.String()),
			)
			return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
		}

		return nil
	})
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status *entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	var updated *entity.Booking

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + bookingColumns

		booking, err := scanBooking(tx.QueryRow(ctx, query, id, string(status)))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
		}

		if status == entity.BookingStatusCancelled {
			if err := releaseRoom(ctx, tx, booking.RoomID); err != nil {
				return err
			}
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var deleted *entity.Booking

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `DELETE FROM bookings WHERE id = $1 RETURNING ` + bookingColumns

		booking, err := scanBooking(tx.QueryRow(ctx, query, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete booking %s: %w", id.String(), err)
		}

		if err := releaseRoom(ctx, tx, booking.RoomID); err != nil {
			return err
		}

		deleted = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return deleted, nil
}

// inTx runs fn in a transaction, committing on nil and rolling back otherwise.
func (r *bookingRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// releaseRoom is a no-op when the room no longer exists.
func releaseRoom(ctx context.Context, tx pgx.Tx, roomID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE rooms SET availability = TRUE, updated_at = NOW() WHERE id = $1`,
		roomID,
	)
	if err != nil {
		return fmt.Errorf("release room %s: %w", roomID.String(), err)
	}
	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var status string
	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.RoomID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Nights,
		&booking.TotalPrice,
		&status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = entity.BookingStatus(status)
	return &booking, nil
}
