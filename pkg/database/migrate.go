package database

import (
	"context"
	"fmt"
)

// schema is applied on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id              UUID PRIMARY KEY,
		name            TEXT NOT NULL,
		type            TEXT NOT NULL CHECK (type IN ('single', 'double', 'suite')),
		price_per_night DOUBLE PRECISION NOT NULL CHECK (price_per_night > 0),
		features        TEXT[] NOT NULL DEFAULT '{}',
		availability    BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_type_price ON rooms (type, price_per_night)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id          UUID PRIMARY KEY,
		customer_id UUID NOT NULL,
		room_id     UUID NOT NULL,
		start_date  TIMESTAMPTZ NOT NULL,
		end_date    TIMESTAMPTZ NOT NULL CHECK (end_date > start_date),
		nights      INTEGER NOT NULL,
		total_price DOUBLE PRECISION NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled')),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings (room_id)`,
}

// Migrate creates the rooms, customers and bookings tables if they are missing.
func Migrate(ctx context.Context, db PgxIface) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
