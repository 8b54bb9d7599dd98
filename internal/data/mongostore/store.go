// Package mongostore implements the repositories on MongoDB.
//
// MongoDB offers no cross-collection transaction on a standalone server, so
// each booking unit of work writes one collection first and undoes that
// write when the follow-up write on the other collection fails: the room
// hold on create, the status change on cancel, the removal on delete.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// New returns a Repository backed by db.
func New(db *mongo.Database, log *zap.Logger) *repository.Repository {
	rooms := db.Collection(roomCollection)
	return &repository.Repository{
		Room: &roomRepository{
			coll: rooms,
			log:  log.With(zap.String("repository", "mongo_room")),
		},
		Customer: &customerRepository{
			coll: db.Collection(customerCollection),
			log:  log.With(zap.String("repository", "mongo_customer")),
		},
		Booking: &bookingRepository{
			coll:  db.Collection(bookingCollection),
			rooms: rooms,
			log:   log.With(zap.String("repository", "mongo_booking")),
		},
	}
}

// EnsureIndexes creates the secondary indexes the listing queries use.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(bookingCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create bookings status index: %w", err)
	}

	_, err = db.Collection(roomCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}, {Key: "pricePerNight", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create rooms type/price index: %w", err)
	}

	return nil
}

var listOrder = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

type roomRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	if _, err := r.coll.InsertOne(ctx, newRoomDocument(room)); err != nil {
		r.log.Error("Failed to create room", zap.Error(err), zap.String("name", room.Name))
		return fmt.Errorf("create room %s: %w", room.Name, err)
	}
	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var doc roomDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *roomRepository) FindAll(ctx context.Context, filter repository.RoomFilter) ([]*entity.Room, error) {
	query := bson.M{}
	if filter.Type != nil {
		query["type"] = string(*filter.Type)
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["pricePerNight"] = price
	}

	cursor, err := r.coll.Find(ctx, query, listOrder)
	if err != nil {
		r.log.Error("Failed to find rooms", zap.Error(err))
		return nil, fmt.Errorf("find rooms: %w", err)
	}

	var docs []roomDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}

	rooms := make([]*entity.Room, 0, len(docs))
	for _, doc := range docs {
		room, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

type customerRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if _, err := r.coll.InsertOne(ctx, newCustomerDocument(customer)); err != nil {
		r.log.Error("Failed to create customer", zap.Error(err), zap.String("email", customer.Email))
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var doc customerDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID", zap.Error(err), zap.String("customer_id", id.String()))
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, listOrder)
	if err != nil {
		r.log.Error("Failed to find customers", zap.Error(err))
		return nil, fmt.Errorf("find customers: %w", err)
	}

	var docs []customerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}

	customers := make([]*entity.Customer, 0, len(docs))
	for _, doc := range docs {
		customer, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

type bookingRepository struct {
	coll  *mongo.Collection
	rooms *mongo.Collection
	log   *zap.Logger
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	roomID := booking.RoomID.String()

	result, err := r.rooms.UpdateOne(ctx,
		bson.M{"_id": roomID, "availability": true},
		bson.M{"$set": bson.M{"availability": false, "updatedAt": booking.CreatedAt}},
	)
	if err != nil {
		return fmt.Errorf("hold room %s: %w", roomID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("hold room %s: %w", roomID, repository.ErrConflict)
	}

	if _, err := r.coll.InsertOne(ctx, newBookingDocument(booking)); err != nil {
		r.log.Error("Failed to create booking, releasing room",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		if relErr := r.releaseRoom(ctx, roomID); relErr != nil {
			r.log.Error("Failed to release room after insert failure", zap.Error(relErr), zap.String("room_id", roomID))
		}
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var doc bookingDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *bookingRepository) FindAll(ctx context.Context, status *entity.BookingStatus) ([]*entity.Booking, error) {
	query := bson.M{}
	if status != nil {
		query["status"] = string(*status)
	}

	cursor, err := r.coll.Find(ctx, query, listOrder)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	bookings := make([]*entity.Booking, 0, len(docs))
	for _, doc := range docs {
		booking, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	now := time.Now().UTC()

	var prev bookingDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", id.String(), repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if status == entity.BookingStatusCancelled {
		if err := r.releaseRoom(ctx, prev.RoomID); err != nil {
			r.log.Error("Failed to release room, restoring booking status",
				zap.Error(err),
				zap.String("booking_id", id.String()),
				zap.String("status", prev.Status),
			)
			r.restoreStatus(ctx, prev)
			return nil, err
		}
	}

	updated := prev
	updated.Status = string(status)
	updated.UpdatedAt = now
	return updated.toEntity()
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var doc bookingDocument
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", id.String(), repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if err := r.releaseRoom(ctx, doc.RoomID); err != nil {
		r.log.Error("Failed to release room, restoring booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		if _, insErr := r.coll.InsertOne(ctx, doc); insErr != nil {
			r.log.Error("Failed to restore deleted booking", zap.Error(insErr), zap.String("booking_id", id.String()))
		}
		return nil, err
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return doc.toEntity()
}

// restoreStatus puts back the status a booking had before a failed update.
func (r *bookingRepository) restoreStatus(ctx context.Context, prev bookingDocument) {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": prev.ID},
		bson.M{"$set": bson.M{"status": prev.Status, "updatedAt": prev.UpdatedAt}},
	)
	if err != nil {
		r.log.Error("Failed to restore booking status", zap.Error(err), zap.String("booking_id", prev.ID))
	}
}

// releaseRoom matches nothing when the room no longer exists.
func (r *bookingRepository) releaseRoom(ctx context.Context, roomID string) error {
	_, err := r.rooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$set": bson.M{"availability": true, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("release room %s: %w", roomID, err)
	}
	return nil
}
