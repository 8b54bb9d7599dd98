package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

var stamp = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func roomDoc(id uuid.UUID, price float64, available bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "name", Value: "Garden"},
		{Key: "type", Value: "double"},
		{Key: "pricePerNight", Value: price},
		{Key: "features", Value: bson.A{"wifi", "tv"}},
		{Key: "availability", Value: available},
		{Key: "createdAt", Value: stamp},
		{Key: "updatedAt", Value: stamp},
	}
}

func bookingDoc(id, roomID uuid.UUID, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "customerId", Value: uuid.NewString()},
		{Key: "roomId", Value: roomID.String()},
		{Key: "startDate", Value: stamp},
		{Key: "endDate", Value: stamp.AddDate(0, 0, 3)},
		{Key: "nights", Value: 3},
		{Key: "totalPrice", Value: 300.0},
		{Key: "status", Value: status},
		{Key: "createdAt", Value: stamp},
		{Key: "updatedAt", Value: stamp},
	}
}

func updateResult(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func newBooking(roomID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: stamp, UpdatedAt: stamp},
		CustomerID: uuid.New(),
		RoomID:     roomID,
		StartDate:  stamp,
		EndDate:    stamp.AddDate(0, 0, 3),
		Nights:     3,
		TotalPrice: 300,
		Status:     entity.BookingStatusPending,
	}
}

func TestRoomRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id decodes document", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		id := uuid.New()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hotel.rooms", mtest.FirstBatch, roomDoc(id, 120, true)))

		room, err := repo.Room.FindByID(context.Background(), id)
		require.NoError(mt, err)
		require.NotNil(mt, room)
		assert.Equal(mt, id, room.ID)
		assert.Equal(mt, entity.RoomTypeDouble, room.Type)
		assert.Equal(mt, []string{"wifi", "tv"}, room.Features)
		assert.True(mt, room.Availability)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hotel.rooms", mtest.FirstBatch))

		room, err := repo.Room.FindByID(context.Background(), uuid.New())
		require.NoError(mt, err)
		assert.Nil(mt, room)
	})

	mt.Run("find all", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hotel.rooms", mtest.FirstBatch,
			roomDoc(uuid.New(), 100, true),
			roomDoc(uuid.New(), 200, false),
		))

		minPrice := 100.0
		rooms, err := repo.Room.FindAll(context.Background(), repository.RoomFilter{MinPrice: &minPrice})
		require.NoError(mt, err)
		require.Len(mt, rooms, 2)
		assert.False(mt, rooms[1].Availability)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Room.Create(context.Background(), &entity.Room{
			Base:          entity.Base{ID: uuid.New(), CreatedAt: stamp, UpdatedAt: stamp},
			Name:          "Attic",
			Type:          entity.RoomTypeSingle,
			PricePerNight: 70,
			Availability:  true,
		})
		require.NoError(mt, err)
	})
}

func TestCustomerRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find all", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hotel.customers", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: uuid.NewString()},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@example.com"},
			{Key: "phone", Value: "+34 600 000 000"},
			{Key: "createdAt", Value: stamp},
			{Key: "updatedAt", Value: stamp},
		}))

		customers, err := repo.Customer.FindAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, customers, 1)
		assert.Equal(mt, "ana@example.com", customers[0].Email)
	})
}

func TestBookingRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create holds room then inserts", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(updateResult(1), mtest.CreateSuccessResponse())

		require.NoError(mt, repo.Booking.Create(context.Background(), newBooking(uuid.New())))
	})

	mt.Run("create on taken room conflicts", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(updateResult(0))

		err := repo.Booking.Create(context.Background(), newBooking(uuid.New()))
		assert.True(mt, errors.Is(err, repository.ErrConflict))
	})

	mt.Run("create insert failure releases room", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(
			updateResult(1),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
			updateResult(1),
		)

		err := repo.Booking.Create(context.Background(), newBooking(uuid.New()))
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, repository.ErrConflict))
	})

	mt.Run("cancel releases room", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		id, roomID := uuid.New(), uuid.New()
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bookingDoc(id, roomID, "pending")}},
			updateResult(1),
		)

		booking, err := repo.Booking.UpdateStatus(context.Background(), id, entity.BookingStatusCancelled)
		require.NoError(mt, err)
		assert.Equal(mt, entity.BookingStatusCancelled, booking.Status)
		assert.Equal(mt, roomID, booking.RoomID)
		assert.Equal(mt, []string{"findAndModify", "update"}, commandNames(mt))
	})

	mt.Run("cancel restores status when release fails", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		id := uuid.New()
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bookingDoc(id, uuid.New(), "confirmed")}},
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "bad value"}),
			updateResult(1),
		)

		_, err := repo.Booking.UpdateStatus(context.Background(), id, entity.BookingStatusCancelled)
		require.Error(mt, err)

		started := mt.GetAllStartedEvents()
		require.Len(mt, started, 3)
		restore := started[2]
		assert.Equal(mt, "update", restore.CommandName)
		assert.Equal(mt, bookingCollection, restore.Command.Lookup("update").StringValue())
		status := restore.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u", "$set", "status")
		assert.Equal(mt, "confirmed", status.StringValue())
	})

	mt.Run("update missing booking", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.Booking.UpdateStatus(context.Background(), uuid.New(), entity.BookingStatusConfirmed)
		assert.True(mt, errors.Is(err, repository.ErrNotFound))
	})

	mt.Run("delete removes booking then releases room", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		id, roomID := uuid.New(), uuid.New()
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bookingDoc(id, roomID, "confirmed")}},
			updateResult(1),
		)

		booking, err := repo.Booking.Delete(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, booking.ID)
		assert.Equal(mt, []string{"findAndModify", "update"}, commandNames(mt))
	})

	mt.Run("delete restores booking when release fails", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		id := uuid.New()
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bookingDoc(id, uuid.New(), "confirmed")}},
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "bad value"}),
			mtest.CreateSuccessResponse(),
		)

		_, err := repo.Booking.Delete(context.Background(), id)
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, repository.ErrNotFound))

		started := mt.GetAllStartedEvents()
		require.Len(mt, started, 3)
		assert.Equal(mt, "insert", started[2].CommandName)
		restored := started[2].Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, id.String(), restored.Lookup("_id").StringValue())
	})

	mt.Run("delete missing booking", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.Booking.Delete(context.Background(), uuid.New())
		assert.True(mt, errors.Is(err, repository.ErrNotFound))
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		id, roomID := uuid.New(), uuid.New()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hotel.bookings", mtest.FirstBatch, bookingDoc(id, roomID, "confirmed")))

		booking, err := repo.Booking.FindByID(context.Background(), id)
		require.NoError(mt, err)
		require.NotNil(mt, booking)
		assert.Equal(mt, entity.BookingStatusConfirmed, booking.Status)
		assert.Equal(mt, roomID, booking.RoomID)
	})

	mt.Run("find all by status", func(mt *mtest.T) {
		repo := New(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hotel.bookings", mtest.FirstBatch,
			bookingDoc(uuid.New(), uuid.New(), "pending"),
		))

		status := entity.BookingStatusPending
		bookings, err := repo.Booking.FindAll(context.Background(), &status)
		require.NoError(mt, err)
		require.Len(mt, bookings, 1)
		assert.Equal(mt, 3, bookings[0].Nights)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}
