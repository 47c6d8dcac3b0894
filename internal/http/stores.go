package http

import (
	"context"
	"time"

	"github.com/foodsphere/server/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Both the SQLite and MongoDB repositories satisfy them.

// ListingStore provides CRUD over one listing collection.
type ListingStore interface {
	Create(ctx context.Context, item *entities.Listing) (*entities.InsertResult, error)
	List(ctx context.Context) ([]entities.Listing, error)
	Get(ctx context.Context, id string) (*entities.Listing, error)
	Update(ctx context.Context, id string, item *entities.Listing) (*entities.UpdateResult, error)
	Delete(ctx context.Context, id string) (*entities.DeleteResult, error)
}

// StatsStore computes aggregate counts.
type StatsStore interface {
	Overview(ctx context.Context) (*entities.Overview, error)
	SuppliesByCategory(ctx context.Context) ([]entities.CategoryTotal, error)
}

// AuditReader reads recorded audit events.
type AuditReader interface {
	GetEvents(ctx context.Context, email string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JobSchedule reports the state of a recurring background job.
type JobSchedule interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

// Stores groups the repositories of one backend.
type Stores struct {
	Supplies     ListingStore
	Volunteers   ListingStore
	Comments     ListingStore
	Testimonials ListingStore
	Stats        StatsStore
	Health       Pinger
}

const healthCheckTimeout = 2 * time.Second
