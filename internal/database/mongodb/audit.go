package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/foodsphere/server/internal/entities"
)

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(d *Database) *AuditRepository {
	return &AuditRepository{coll: d.DB.Collection(AuditCollection)}
}

func (r *AuditRepository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	doc := document[entities.AuditEvent]{ID: bson.NewObjectID(), Body: *event}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	event.ID = doc.ID.Hex()
	return nil
}

func (r *AuditRepository) GetEvents(ctx context.Context, email string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	filter := bson.D{}
	if email != "" {
		filter = bson.D{{Key: "email", Value: email}}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	var docs []document[entities.AuditEvent]
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	events := make([]entities.AuditEvent, 0, len(docs))
	for _, doc := range docs {
		event := doc.Body
		event.ID = doc.ID.Hex()
		events = append(events, event)
	}
	return events, total, nil
}

func (r *AuditRepository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "createdAt", Value: bson.D{{Key: "$lt", Value: olderThan}}}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
