package mongodb

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/foodsphere/server/internal/entities"
)

// setupTestDB connects to TEST_MONGODB_URI and uses a throwaway database.
func setupTestDB(t *testing.T) *Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := "foodsphere_test_" + entities.NewID()
	d, err := Connect(ctx, uri, name)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = d.DB.Drop(context.Background())
		_ = d.Close()
	})
	return d
}

func TestUsersRepository(t *testing.T) {
	d := setupTestDB(t)
	repo := NewUsersRepository(d)
	ctx := context.Background()

	user, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	created := &entities.User{Name: "Ann", Email: "a@x.com", PasswordHash: "digest"}
	require.NoError(t, repo.Insert(ctx, created))
	assert.Regexp(t, "^[0-9a-f]{24}$", created.ID)

	err = repo.Insert(ctx, &entities.User{Name: "Bob", Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, entities.ErrDuplicate)

	user, err = repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "digest", user.PasswordHash)
}

func TestListingsRepository(t *testing.T) {
	d := setupTestDB(t)
	repo := NewListingsRepository(d, entities.Supplies)
	ctx := context.Background()

	body := entities.Document{
		"title":      "Rice",
		"category":   "grains",
		"quantity":   int64(4),
		"donorEmail": "d@x.com",
		"pickup":     map[string]any{"slot": "morning", "days": []any{"mon", int64(2)}},
	}
	res, err := repo.Create(ctx, &entities.Listing{Body: body})
	require.NoError(t, err)

	got, err := repo.Get(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, res.InsertedID, got.ID)
	assert.Equal(t, body, got.Body)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.Get(ctx, strings.ToUpper(res.InsertedID))
	assert.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	upd, err := repo.Update(ctx, res.InsertedID, &entities.Listing{Body: entities.Document{"title": "Rice", "category": "grains", "quantity": int64(9)}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	got, err = repo.Get(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "d@x.com", got.Body["donorEmail"])
	assert.Nil(t, got.Body["image"])

	newID := entities.NewID()
	upd, err = repo.Update(ctx, strings.ToUpper(newID), &entities.Listing{Body: entities.Document{"title": "Beans"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.UpsertedCount)
	require.NotNil(t, upd.UpsertedID)
	assert.Equal(t, newID, *upd.UpsertedID)

	del, err := repo.Delete(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	_, err = repo.Get(ctx, res.InsertedID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = repo.Get(ctx, "bad")
	assert.ErrorIs(t, err, entities.ErrInvalidID)
}

func TestStatsRepository(t *testing.T) {
	d := setupTestDB(t)
	supplies := NewListingsRepository(d, entities.Supplies)
	stats := NewStatsRepository(d)
	ctx := context.Background()

	for _, body := range []entities.Document{
		{"category": "grains", "quantity": int64(10)},
		{"category": "grains", "quantity": "5"},
		{"category": "dairy", "quantity": 2.5},
		{"category": "dairy", "quantity": "lots"},
	} {
		_, err := supplies.Create(ctx, &entities.Listing{Body: body})
		require.NoError(t, err)
	}

	overview, err := stats.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), overview.Supplies)
	assert.Equal(t, 17.5, overview.TotalQuantity)

	totals, err := stats.SuppliesByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.CategoryTotal{
		{Category: "dairy", Count: 2, TotalQuantity: 2.5},
		{Category: "grains", Count: 2, TotalQuantity: 15},
	}, totals)
}

func TestAuditRepository(t *testing.T) {
	d := setupTestDB(t)
	repo := NewAuditRepository(d)
	ctx := context.Background()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{Action: "login", Email: "a@x.com", CreatedAt: time.Now().AddDate(0, 0, -40)}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{Action: "login", Email: "a@x.com"}))

	events, total, err := repo.GetEvents(ctx, "a@x.com", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, events, 2)

	deleted, err := repo.DeleteOldEvents(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestFromDocument(t *testing.T) {
	oid := bson.NewObjectID()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	item := fromDocument(bson.M{
		"_id":       oid,
		"createdAt": bson.NewDateTimeFromTime(created),
		"title":     "Rice",
		"quantity":  int32(5),
		"pickup":    bson.D{{Key: "slot", Value: "morning"}},
		"tags":      bson.A{"dry", int32(2)},
	})

	assert.Equal(t, oid.Hex(), item.ID)
	assert.True(t, created.Equal(item.CreatedAt))
	assert.Equal(t, entities.Document{
		"title":    "Rice",
		"quantity": int64(5),
		"pickup":   map[string]any{"slot": "morning"},
		"tags":     []any{"dry", int64(2)},
	}, item.Body)
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, SuppliesCollection, collectionName(entities.Supplies))
	assert.Equal(t, "volunteers", collectionName(entities.Volunteers))
}
