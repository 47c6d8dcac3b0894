package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/foodsphere/server/internal/entities"
)

// collectionNames maps listing collections onto the names the site's MongoDB
// deployment already uses.
var collectionNames = map[string]string{
	entities.Supplies.Name:     SuppliesCollection,
	entities.Volunteers.Name:   VolunteersCollection,
	entities.Comments.Name:     CommentsCollection,
	entities.Testimonials.Name: TestimonialsCollection,
}

func collectionName(coll entities.Collection) string {
	if name, ok := collectionNames[coll.Name]; ok {
		return name
	}
	return coll.Name
}

// ListingsRepository stores one listing collection. Documents are kept as
// the client sent them, plus _id and createdAt.
type ListingsRepository struct {
	coll    *mongo.Collection
	listing entities.Collection
}

func NewListingsRepository(d *Database, listing entities.Collection) *ListingsRepository {
	return &ListingsRepository{coll: d.DB.Collection(collectionName(listing)), listing: listing}
}

func (r *ListingsRepository) Create(ctx context.Context, item *entities.Listing) (*entities.InsertResult, error) {
	oid := bson.NewObjectID()
	item.CreatedAt = time.Now()

	doc := bson.M{}
	for k, v := range item.Body {
		doc[k] = v
	}
	doc[entities.FieldID] = oid
	doc[entities.FieldCreatedAt] = item.CreatedAt

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	item.ID = oid.Hex()
	return &entities.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

func (r *ListingsRepository) List(ctx context.Context) ([]entities.Listing, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]entities.Listing, 0, len(docs))
	for _, doc := range docs {
		items = append(items, fromDocument(doc))
	}
	return items, nil
}

func (r *ListingsRepository) Get(ctx context.Context, id string) (*entities.Listing, error) {
	oid, err := entities.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	item := fromDocument(doc)
	return &item, nil
}

// Update sets the collection's editable fields on the document with id,
// upserting when absent.
func (r *ListingsRepository) Update(ctx context.Context, id string, item *entities.Listing) (*entities.UpdateResult, error) {
	oid, err := entities.ParseID(id)
	if err != nil {
		return nil, err
	}

	update := bson.D{
		{Key: "$set", Value: bson.M(r.listing.Project(item.Body))},
		{Key: "$setOnInsert", Value: bson.D{{Key: entities.FieldCreatedAt, Value: time.Now()}}},
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	result := &entities.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedCount > 0 {
		upserted := oid.Hex()
		result.UpsertedID = &upserted
	}
	return result, nil
}

func (r *ListingsRepository) Delete(ctx context.Context, id string) (*entities.DeleteResult, error) {
	oid, err := entities.ParseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, err
	}
	return &entities.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// fromDocument splits the server-owned keys off a stored document.
func fromDocument(doc bson.M) entities.Listing {
	var item entities.Listing

	switch id := doc[entities.FieldID].(type) {
	case bson.ObjectID:
		item.ID = id.Hex()
	case nil:
	default:
		item.ID = fmt.Sprint(id)
	}
	if created, ok := doc[entities.FieldCreatedAt].(bson.DateTime); ok {
		item.CreatedAt = created.Time()
	}

	item.Body = make(entities.Document, len(doc))
	for k, v := range doc {
		if k == entities.FieldID || k == entities.FieldCreatedAt {
			continue
		}
		item.Body[k] = plainValue(v)
	}
	return item
}

// plainValue converts decoded BSON into the types a JSON-decoded document
// holds, so both backends return identical bodies.
func plainValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(val))
		for k, elem := range val {
			m[k] = plainValue(elem)
		}
		return m
	case bson.A:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = plainValue(elem)
		}
		return out
	case int32:
		return int64(val)
	case bson.DateTime:
		return val.Time().UTC()
	case bson.ObjectID:
		return val.Hex()
	default:
		return v
	}
}
