package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodsphere/server/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, model := range Models {
		assert.True(t, db.DB.Migrator().HasTable(model), "%T should be migrated", model)
	}
	for _, coll := range entities.ListingCollections {
		assert.True(t, db.DB.Migrator().HasTable(coll.Name), "%s should be migrated", coll.Name)
	}
	assert.NoError(t, db.Ping(context.Background()))
}

func TestNewDatabase_TranslatesUniqueViolation(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	first := &entities.User{ID: entities.NewID(), Name: "Ann", Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, db.DB.Create(first).Error)

	second := &entities.User{ID: entities.NewID(), Name: "Ann", Email: "a@x.com", PasswordHash: "y"}
	err = db.DB.Create(second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewDatabase_ReopenMigratesAgain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDatabase(path)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestPing_Closed(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.Ping(context.Background()))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:", dsn(":memory:"))
	assert.Equal(t, "file.db?mode=ro", dsn("file.db?mode=ro"))
	assert.Contains(t, dsn("./foodsphere.db"), "_busy_timeout=5000")
}
