// Package users provides the credential store on SQLite.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.FindByEmail(ctx, "a@x.com")
package users

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/foodsphere/server/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail retrieves a user by email. It returns (nil, nil) when no user matches.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user. A taken email yields entities.ErrDuplicate.
func (r *Repository) Insert(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = entities.NewID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrDuplicate
		}
		return err
	}
	return nil
}
