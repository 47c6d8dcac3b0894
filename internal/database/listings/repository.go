// Package listings provides CRUD for the public collections (supplies,
// volunteers, comments, testimonials) on SQLite. Each collection is its own
// table holding the client's JSON object in a text column.
//
// # Usage
//
//	supplies := listings.NewRepository(db, entities.Supplies)
//	res, err := supplies.Create(ctx, &entities.Listing{Body: entities.Document{"title": "Rice"}})
package listings

import (
	"context"
	"errors"
	"reflect"
	"time"

	"gorm.io/gorm"

	"github.com/foodsphere/server/internal/entities"
)

// Repository stores the records of one collection.
type Repository struct {
	db   *gorm.DB
	coll entities.Collection
}

// NewRepository creates a repository for coll.
func NewRepository(db *gorm.DB, coll entities.Collection) *Repository {
	return &Repository{db: db, coll: coll}
}

func (r *Repository) table(db *gorm.DB) *gorm.DB {
	return db.Table(r.coll.Name)
}

// Create stores the body as a new record with a server-generated id.
func (r *Repository) Create(ctx context.Context, item *entities.Listing) (*entities.InsertResult, error) {
	item.ID = entities.NewID()
	item.CreatedAt = time.Now()
	if item.Body == nil {
		item.Body = entities.Document{}
	}

	if err := r.table(r.db.WithContext(ctx)).Create(item).Error; err != nil {
		return nil, err
	}
	return &entities.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

// List returns every record in insertion order.
func (r *Repository) List(ctx context.Context) ([]entities.Listing, error) {
	items := make([]entities.Listing, 0)
	err := r.table(r.db.WithContext(ctx)).Order("created_at ASC, id ASC").Find(&items).Error
	return items, err
}

// Get retrieves a record by id.
func (r *Repository) Get(ctx context.Context, id string) (*entities.Listing, error) {
	id, err := entities.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	var item entities.Listing
	err = r.table(r.db.WithContext(ctx)).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update writes the collection's editable fields from item into the record
// with id, creating the record when it does not exist. Other stored fields
// are left as they are.
func (r *Repository) Update(ctx context.Context, id string, item *entities.Listing) (*entities.UpdateResult, error) {
	id, err := entities.CanonicalID(id)
	if err != nil {
		return nil, err
	}
	fields := r.coll.Project(item.Body)

	result := &entities.UpdateResult{Acknowledged: true}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Listing
		err := r.table(tx).Where("id = ?", id).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created := &entities.Listing{ID: id, Body: fields, CreatedAt: time.Now()}
			if err := r.table(tx).Create(created).Error; err != nil {
				return err
			}
			result.UpsertedCount = 1
			result.UpsertedID = &id
			return nil
		}
		if err != nil {
			return err
		}

		result.MatchedCount = 1
		if existing.Body == nil {
			existing.Body = entities.Document{}
		}
		changed := false
		for key, value := range fields {
			if old, ok := existing.Body[key]; !ok || !reflect.DeepEqual(old, value) {
				existing.Body[key] = value
				changed = true
			}
		}
		if !changed {
			return nil
		}

		if err := r.table(tx).Where("id = ?", id).Update("body", existing.Body).Error; err != nil {
			return err
		}
		result.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the record with id. Deleting a missing record is not an error.
func (r *Repository) Delete(ctx context.Context, id string) (*entities.DeleteResult, error) {
	id, err := entities.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	res := r.table(r.db.WithContext(ctx)).Where("id = ?", id).Delete(&entities.Listing{})
	if res.Error != nil {
		return nil, res.Error
	}
	return &entities.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
