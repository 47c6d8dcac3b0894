// Package mongodb provides the MongoDB-backed repositories. Each type mirrors
// its SQLite counterpart in the parent database package so either backend can
// be injected into the services and controllers.
package mongodb

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	UsersCollection        = "users"
	SuppliesCollection     = "supplyCollection"
	VolunteersCollection   = "volunteers"
	CommentsCollection     = "comments"
	TestimonialsCollection = "testimonials"
	AuditCollection        = "auditEvents"
)

const disconnectTimeout = 5 * time.Second

type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens a client, verifies the server answers, and ensures indexes.
func Connect(ctx context.Context, uri, dbName string) (*Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	d := &Database{Client: client, DB: client.Database(dbName)}
	if err := d.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("MongoDB initialized successfully (database %s)", dbName)

	return d, nil
}

// EnsureIndexes creates the unique email index on users and the audit
// timestamp index used by retention cleanup.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	_, err := d.DB.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = d.DB.Collection(AuditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return d.Client.Disconnect(ctx)
}

// Ping checks that the primary is reachable.
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

// document stores an entity body under a native ObjectID key. Entities keep
// their id as a hex string excluded from BSON.
type document[T any] struct {
	ID   bson.ObjectID `bson:"_id"`
	Body T             `bson:",inline"`
}
