package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/foodsphere/server/internal/entities"
)

// Supply documents are free-form; these match the SQLite expressions: a
// non-numeric quantity counts as zero and a missing category groups under "".
var (
	quantityExpr = bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: "$quantity"},
		{Key: "to", Value: "double"},
		{Key: "onError", Value: 0},
		{Key: "onNull", Value: 0},
	}}}
	categoryExpr = bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: "$category"},
		{Key: "to", Value: "string"},
		{Key: "onError", Value: ""},
		{Key: "onNull", Value: ""},
	}}}
)

type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(d *Database) *StatsRepository {
	return &StatsRepository{db: d.DB}
}

func (r *StatsRepository) Overview(ctx context.Context) (*entities.Overview, error) {
	overview := &entities.Overview{}

	counts := []struct {
		collection string
		dest       *int64
	}{
		{UsersCollection, &overview.Users},
		{collectionName(entities.Supplies), &overview.Supplies},
		{collectionName(entities.Volunteers), &overview.Volunteers},
		{collectionName(entities.Comments), &overview.Comments},
		{collectionName(entities.Testimonials), &overview.Testimonials},
	}
	for _, c := range counts {
		n, err := r.db.Collection(c.collection).CountDocuments(ctx, bson.D{})
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	cursor, err := r.db.Collection(collectionName(entities.Supplies)).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: quantityExpr}}},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		overview.TotalQuantity = rows[0].Total
	}

	return overview, nil
}

func (r *StatsRepository) SuppliesByCategory(ctx context.Context) ([]entities.CategoryTotal, error) {
	cursor, err := r.db.Collection(collectionName(entities.Supplies)).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: categoryExpr},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalQuantity", Value: bson.D{{Key: "$sum", Value: quantityExpr}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}

	totals := make([]entities.CategoryTotal, 0)
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}
