package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

const collectionProperties = "properties"

// PropertyRepository implements ports.PropertyRepository using MongoDB.
type PropertyRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{db: db, col: db.Collection(collectionProperties)}
}

type propertyDoc struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	Slug         string                `bson:"slug"`
	Name         string                `bson:"name"`
	Address      string                `bson:"address"`
	Location     string                `bson:"location"`
	Description  string                `bson:"description,omitempty"`
	ContactEmail string                `bson:"contact_email"`
	ContactPhone string                `bson:"contact_phone,omitempty"`
	PasswordHash string                `bson:"password_hash"`
	LicenceRef   string                `bson:"licence_ref,omitempty"`
	State        domain.LifecycleState `bson:"state"`
	CreatedAt    time.Time             `bson:"created_at"`
}

func (d *propertyDoc) toDomain() *domain.Property {
	return &domain.Property{
		ID:           d.ID.Hex(),
		Slug:         d.Slug,
		Name:         d.Name,
		Address:      d.Address,
		Location:     d.Location,
		Description:  d.Description,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		PasswordHash: d.PasswordHash,
		LicenceRef:   d.LicenceRef,
		State:        d.State,
		CreatedAt:    d.CreatedAt,
	}
}

// Create inserts a new property document. The unique slug index turns
// duplicate slugs into domain.ErrSlugTaken.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := propertyDoc{
		Slug:         p.Slug,
		Name:         p.Name,
		Address:      p.Address,
		Location:     p.Location,
		Description:  p.Description,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		PasswordHash: p.PasswordHash,
		LicenceRef:   p.LicenceRef,
		State:        p.State,
		CreatedAt:    p.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrSlugTaken
		}
		return "", err
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PropertyRepository) FindBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *PropertyRepository) FindByEmail(ctx context.Context, email string) (*domain.Property, error) {
	return r.findOne(ctx, bson.M{"contact_email": email})
}

func (r *PropertyRepository) findOne(ctx context.Context, filter bson.M) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListPending returns pending properties, newest registrations first.
func (r *PropertyRepository) ListPending(ctx context.Context) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"state": domain.StatePending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []domain.Property
	for cur.Next(ctx) {
		var doc propertyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, *doc.toDomain())
	}
	return result, cur.Err()
}

// SearchApproved matches location as a case-insensitive substring, restricted
// to approved properties. The query is quoted so user input cannot inject
// regex metacharacters.
func (r *PropertyRepository) SearchApproved(ctx context.Context, location string) ([]domain.PropertySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"state":    domain.StateApproved,
		"location": primitive.Regex{Pattern: regexp.QuoteMeta(location), Options: "i"},
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []domain.PropertySummary
	for cur.Next(ctx) {
		var doc propertyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toDomain().Summary())
	}
	return result, cur.Err()
}

func (r *PropertyRepository) SetState(ctx context.Context, id string, state domain.LifecycleState) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"state": state}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// Delete removes the property and cascades to room types, bookings and staff
// accounts in a single transaction. The cascade is explicit, not a store
// default.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrPropertyNotFound
		}

		owned := bson.M{"property_id": id}
		for _, name := range []string{collectionRoomTypes, collectionBookings, collectionStaff} {
			if _, err := r.db.Collection(name).DeleteMany(sc, owned); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes creates the key constraints on the properties collection.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "contact_email", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
