package listings

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodsphere/server/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "listings.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	for _, coll := range entities.ListingCollections {
		require.NoError(t, db.Table(coll.Name).AutoMigrate(&entities.Listing{}))
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func listing(body entities.Document) *entities.Listing {
	return &entities.Listing{Body: body}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Supplies)
	ctx := context.Background()

	item := listing(entities.Document{
		"image":      "https://img.example/rice.jpg",
		"category":   "grains",
		"title":      "Rice",
		"quantity":   int64(20),
		"donorEmail": "d@x.com",
		"pickup":     map[string]any{"slot": "morning"},
	})
	res, err := repo.Create(ctx, item)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Regexp(t, "^[0-9a-f]{24}$", res.InsertedID)
	assert.Equal(t, res.InsertedID, item.ID)

	got, err := repo.Get(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, item.Body, got.Body, "body is stored verbatim")
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRepository_StringQuantityStoredAsSent(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Supplies)
	ctx := context.Background()

	res, err := repo.Create(ctx, listing(entities.Document{"title": "Rice", "quantity": "5"}))
	require.NoError(t, err)

	got, err := repo.Get(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "5", got.Body["quantity"])
}

func TestRepository_Get_Errors(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Supplies)
	ctx := context.Background()

	_, err := repo.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, entities.ErrInvalidID)

	_, err = repo.Get(ctx, entities.NewID())
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_IDsAreCaseInsensitive(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Supplies)
	ctx := context.Background()

	created, err := repo.Create(ctx, listing(entities.Document{"title": "Rice"}))
	require.NoError(t, err)
	upper := strings.ToUpper(created.InsertedID)

	got, err := repo.Get(ctx, upper)
	require.NoError(t, err)
	assert.Equal(t, created.InsertedID, got.ID)

	res, err := repo.Update(ctx, upper, listing(entities.Document{"title": "Brown rice"}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Zero(t, res.UpsertedCount)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Brown rice", items[0].Body["title"])

	del, err := repo.Delete(ctx, upper)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Comments)
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	for _, text := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, listing(entities.Document{"name": "Ann", "text": text}))
		require.NoError(t, err)
	}

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Body["text"])
	assert.Equal(t, "third", items[2].Body["text"])
}

func TestRepository_CollectionsAreSeparate(t *testing.T) {
	db := setupTestDB(t)
	supplies := NewRepository(db, entities.Supplies)
	comments := NewRepository(db, entities.Comments)
	ctx := context.Background()

	created, err := supplies.Create(ctx, listing(entities.Document{"title": "Rice"}))
	require.NoError(t, err)

	_, err = comments.Get(ctx, created.InsertedID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	items, err := comments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepository_Update(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Supplies)
	ctx := context.Background()

	created, err := repo.Create(ctx, listing(entities.Document{
		"title": "Rice", "category": "grains", "quantity": int64(5), "donorEmail": "d@x.com",
	}))
	require.NoError(t, err)

	t.Run("modifies matched record", func(t *testing.T) {
		res, err := repo.Update(ctx, created.InsertedID, listing(entities.Document{
			"title": "Brown rice", "category": "grains", "quantity": int64(0), "ignored": true,
		}))
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)
		assert.Zero(t, res.UpsertedCount)
		assert.Nil(t, res.UpsertedID)

		got, err := repo.Get(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, entities.Document{
			"title":       "Brown rice",
			"category":    "grains",
			"quantity":    int64(0),
			"image":       nil,
			"description": nil,
			"donorEmail":  "d@x.com",
		}, got.Body, "editable fields are replaced, other stored fields kept")
	})

	t.Run("unchanged values are not modified", func(t *testing.T) {
		res, err := repo.Update(ctx, created.InsertedID, listing(entities.Document{
			"title": "Brown rice", "category": "grains", "quantity": int64(0),
		}))
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Zero(t, res.ModifiedCount)
	})

	t.Run("upserts missing record", func(t *testing.T) {
		id := entities.NewID()
		res, err := repo.Update(ctx, id, listing(entities.Document{"title": "Beans", "category": "legumes", "quantity": int64(3)}))
		require.NoError(t, err)
		assert.Zero(t, res.MatchedCount)
		assert.Equal(t, int64(1), res.UpsertedCount)
		require.NotNil(t, res.UpsertedID)
		assert.Equal(t, id, *res.UpsertedID)

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Beans", got.Body["title"])
	})

	t.Run("upsert reports the canonical id", func(t *testing.T) {
		id := entities.NewID()
		res, err := repo.Update(ctx, strings.ToUpper(id), listing(entities.Document{"title": "Oats"}))
		require.NoError(t, err)
		require.NotNil(t, res.UpsertedID)
		assert.Equal(t, id, *res.UpsertedID)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := repo.Update(ctx, "xyz", listing(nil))
		assert.ErrorIs(t, err, entities.ErrInvalidID)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(setupTestDB(t), entities.Testimonials)
	ctx := context.Background()

	created, err := repo.Create(ctx, listing(entities.Document{"name": "Ann", "quote": "Great", "rating": int64(5)}))
	require.NoError(t, err)

	res, err := repo.Delete(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	res, err = repo.Delete(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)

	_, err = repo.Get(ctx, created.InsertedID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = repo.Delete(ctx, "bad")
	assert.ErrorIs(t, err, entities.ErrInvalidID)
}
