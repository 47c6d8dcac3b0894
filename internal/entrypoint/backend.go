package entrypoint

import (
	"context"
	"fmt"
	"time"

	"github.com/foodsphere/server/internal/audit"
	"github.com/foodsphere/server/internal/auth"
	"github.com/foodsphere/server/internal/config"
	"github.com/foodsphere/server/internal/database"
	dbaudit "github.com/foodsphere/server/internal/database/audit"
	"github.com/foodsphere/server/internal/database/listings"
	"github.com/foodsphere/server/internal/database/mongodb"
	"github.com/foodsphere/server/internal/database/stats"
	"github.com/foodsphere/server/internal/database/users"
	"github.com/foodsphere/server/internal/entities"
	http_controllers "github.com/foodsphere/server/internal/http"
)

const connectTimeout = 10 * time.Second

// Backend is the storage selected by DATABASE_DRIVER.
type Backend struct {
	Users  auth.UserStore
	Audit  audit.Repository
	Stores http_controllers.Stores
	Close  func() error
}

// OpenBackend connects to the configured store and builds its repositories.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Database.Driver {
	case config.DatabaseDriverMongo:
		return openMongo(ctx, cfg.Database.MongoURI, cfg.Database.MongoDatabase)
	case config.DatabaseDriverSQLite:
		return openSQLite(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Database.Driver)
	}
}

func openSQLite(path string) (*Backend, error) {
	db, err := database.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Users: users.NewRepository(db.DB),
		Audit: dbaudit.NewRepository(db.DB),
		Stores: http_controllers.Stores{
			Supplies:     listings.NewRepository(db.DB, entities.Supplies),
			Volunteers:   listings.NewRepository(db.DB, entities.Volunteers),
			Comments:     listings.NewRepository(db.DB, entities.Comments),
			Testimonials: listings.NewRepository(db.DB, entities.Testimonials),
			Stats:        stats.NewRepository(db.DB),
			Health:       db,
		},
		Close: db.Close,
	}, nil
}

func openMongo(ctx context.Context, uri, dbName string) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	mdb, err := mongodb.Connect(ctx, uri, dbName)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Users: mongodb.NewUsersRepository(mdb),
		Audit: mongodb.NewAuditRepository(mdb),
		Stores: http_controllers.Stores{
			Supplies:     mongodb.NewListingsRepository(mdb, entities.Supplies),
			Volunteers:   mongodb.NewListingsRepository(mdb, entities.Volunteers),
			Comments:     mongodb.NewListingsRepository(mdb, entities.Comments),
			Testimonials: mongodb.NewListingsRepository(mdb, entities.Testimonials),
			Stats:        mongodb.NewStatsRepository(mdb),
			Health:       mdb,
		},
		Close: mdb.Close,
	}, nil
}
