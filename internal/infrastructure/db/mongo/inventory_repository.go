package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

const (
	collectionRoomTypes = "room_types"
	collectionBookings  = "bookings"
)

// InventoryRepository implements ports.InventoryRepository using MongoDB.
//
// The allocation path follows the conditional-update strategy: one
// FindOneAndUpdate whose filter requires available_capacity > 0 performs the
// check and the decrement as a single document-level atomic step; the booking
// insert joins it inside a session transaction so a failure partway rolls the
// decrement back.
type InventoryRepository struct {
	db        *mongo.Database
	roomTypes *mongo.Collection
	bookings  *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		db:        db,
		roomTypes: db.Collection(collectionRoomTypes),
		bookings:  db.Collection(collectionBookings),
	}
}

type roomTypeDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID        string             `bson:"property_id"`
	Label             string             `bson:"label"`
	Price             float64            `bson:"price"`
	TotalCapacity     int                `bson:"total_capacity"`
	AvailableCapacity int                `bson:"available_capacity"`
}

func (d *roomTypeDoc) toDomain() *domain.RoomType {
	return &domain.RoomType{
		ID:                d.ID.Hex(),
		PropertyID:        d.PropertyID,
		Label:             d.Label,
		Price:             d.Price,
		TotalCapacity:     d.TotalCapacity,
		AvailableCapacity: d.AvailableCapacity,
	}
}

type bookingDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Reference    string               `bson:"reference"`
	PropertyID   string               `bson:"property_id"`
	RoomTypeID   string               `bson:"room_type_id"`
	GuestName    string               `bson:"guest_name"`
	GuestContact string               `bson:"guest_contact,omitempty"`
	CheckIn      time.Time            `bson:"check_in"`
	CheckOut     time.Time            `bson:"check_out"`
	Status       domain.BookingStatus `bson:"status"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func (d *bookingDoc) toDomain() domain.Booking {
	return domain.Booking{
		ID:           d.ID.Hex(),
		Reference:    d.Reference,
		PropertyID:   d.PropertyID,
		RoomTypeID:   d.RoomTypeID,
		GuestName:    d.GuestName,
		GuestContact: d.GuestContact,
		CheckIn:      d.CheckIn,
		CheckOut:     d.CheckOut,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *InventoryRepository) CreateRoomType(ctx context.Context, rt *domain.RoomType) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := roomTypeDoc{
		PropertyID:        rt.PropertyID,
		Label:             rt.Label,
		Price:             rt.Price,
		TotalCapacity:     rt.TotalCapacity,
		AvailableCapacity: rt.AvailableCapacity,
	}

	res, err := r.roomTypes.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// ListRoomTypes returns the property's room types sorted by _id ascending,
// the same order the allocation tie-break uses.
func (r *InventoryRepository) ListRoomTypes(ctx context.Context, propertyID string) ([]domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.roomTypes.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []domain.RoomType
	for cur.Next(ctx) {
		var doc roomTypeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, *doc.toDomain())
	}
	return result, cur.Err()
}

// AllocateBooking performs the atomic check-decrement-insert sequence.
//
// Within one transaction: a FindOneAndUpdate filtered on
// available_capacity > 0, sorted by _id ascending (deterministic tie-break
// when several room types share a label), decrements the capacity; the
// booking insert follows. If the insert fails the transaction aborts and the
// decrement is rolled back, so a crash partway is never observable.
func (r *InventoryRepository) AllocateBooking(ctx context.Context, label string, b *domain.Booking) (*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("allocate booking: start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"property_id":        b.PropertyID,
			"label":              label,
			"available_capacity": bson.M{"$gt": 0},
		}
		opts := options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetReturnDocument(options.After)

		var rt roomTypeDoc
		err := r.roomTypes.FindOneAndUpdate(sc, filter,
			bson.M{"$inc": bson.M{"available_capacity": -1}}, opts).Decode(&rt)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrNoAvailability
			}
			return nil, err
		}

		doc := bookingDoc{
			Reference:    b.Reference,
			PropertyID:   b.PropertyID,
			RoomTypeID:   rt.ID.Hex(),
			GuestName:    b.GuestName,
			GuestContact: b.GuestContact,
			CheckIn:      b.CheckIn,
			CheckOut:     b.CheckOut,
			Status:       b.Status,
			CreatedAt:    b.CreatedAt,
		}
		ins, err := r.bookings.InsertOne(sc, doc)
		if err != nil {
			return nil, err
		}

		b.ID = ins.InsertedID.(primitive.ObjectID).Hex()
		b.RoomTypeID = rt.ID.Hex()
		return rt.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.RoomType), nil
}

// CancelBooking flips confirmed -> cancelled and re-increments the room
// type's available capacity in the same transaction. The increment filter
// guards the available <= total invariant.
func (r *InventoryRepository) CancelBooking(ctx context.Context, propertyID, bookingID string) error {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("cancel booking: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"_id":         oid,
			"property_id": propertyID,
			"status":      domain.BookingConfirmed,
		}

		var booking bookingDoc
		err := r.bookings.FindOneAndUpdate(sc, filter,
			bson.M{"$set": bson.M{"status": domain.BookingCancelled}}).Decode(&booking)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrBookingNotFound
			}
			return nil, err
		}

		rtID, err := primitive.ObjectIDFromHex(booking.RoomTypeID)
		if err != nil {
			return nil, fmt.Errorf("cancel booking: bad room type id %q", booking.RoomTypeID)
		}

		res, err := r.roomTypes.UpdateOne(sc,
			bson.M{
				"_id":   rtID,
				"$expr": bson.M{"$lt": bson.A{"$available_capacity", "$total_capacity"}},
			},
			bson.M{"$inc": bson.M{"available_capacity": 1}})
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			// Capacity already at total: an increment would break the
			// invariant, so the whole cancellation aborts.
			return nil, fmt.Errorf("cancel booking: capacity restore for room type %s refused", booking.RoomTypeID)
		}
		return nil, nil
	})
	return err
}

// ListBookings joins bookings with their room-type labels, ordered by
// check-in date ascending.
func (r *InventoryRepository) ListBookings(ctx context.Context, propertyID string) ([]ports.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roomTypes, err := r.ListRoomTypes(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(roomTypes))
	for _, rt := range roomTypes {
		labels[rt.ID] = rt.Label
	}

	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cur, err := r.bookings.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []ports.BookingView
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, ports.BookingView{
			Booking:       doc.toDomain(),
			RoomTypeLabel: labels[doc.RoomTypeID],
		})
	}
	return result, cur.Err()
}

// Stats derives the dashboard projections: confirmed bookings count, revenue
// (sum of room-type price over confirmed bookings), and remaining inventory.
func (r *InventoryRepository) Stats(ctx context.Context, propertyID string) (*ports.InventoryStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	bookingsCount, err := r.bookings.CountDocuments(ctx, bson.M{
		"property_id": propertyID,
		"status":      domain.BookingConfirmed,
	})
	if err != nil {
		return nil, err
	}

	// Revenue: confirmed bookings joined to their room type's price.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"property_id": propertyID, "status": domain.BookingConfirmed}}},
		{{Key: "$addFields", Value: bson.M{"room_type_oid": bson.M{"$toObjectId": "$room_type_id"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionRoomTypes,
			"localField":   "room_type_oid",
			"foreignField": "_id",
			"as":           "room_type",
		}}},
		{{Key: "$unwind", Value: "$room_type"}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$room_type.price"}}}},
	}
	cur, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var revenue float64
	if cur.Next(ctx) {
		var row struct {
			Revenue float64 `bson:"revenue"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		revenue = row.Revenue
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// Inventory totals over the property's room types.
	invPipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"property_id": propertyID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"available": bson.M{"$sum": "$available_capacity"},
			"count":     bson.M{"$sum": 1},
		}}},
	}
	invCur, err := r.roomTypes.Aggregate(ctx, invPipeline)
	if err != nil {
		return nil, err
	}
	defer invCur.Close(ctx)

	var available, roomTypesCount int64
	if invCur.Next(ctx) {
		var row struct {
			Available int64 `bson:"available"`
			Count     int64 `bson:"count"`
		}
		if err := invCur.Decode(&row); err != nil {
			return nil, err
		}
		available = row.Available
		roomTypesCount = row.Count
	}
	if err := invCur.Err(); err != nil {
		return nil, err
	}

	return &ports.InventoryStats{
		BookingsCount:      bookingsCount,
		TotalRevenue:       revenue,
		AvailableInventory: available,
		RoomTypesCount:     roomTypesCount,
	}, nil
}

// EnsureIndexes creates necessary indexes on the inventory collections.
func (r *InventoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.roomTypes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "label", Value: 1}}},
	}); err != nil {
		return err
	}

	_, err := r.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "check_in", Value: 1}}},
		{Keys: bson.D{{Key: "reference", Value: 1}}},
	})
	return err
}
