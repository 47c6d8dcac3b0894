package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/foodsphere/server/internal/entities"
)

// UsersRepository is the credential store on MongoDB.
type UsersRepository struct {
	coll *mongo.Collection
}

func NewUsersRepository(d *Database) *UsersRepository {
	return &UsersRepository{coll: d.DB.Collection(UsersCollection)}
}

// FindByEmail retrieves a user by email. It returns (nil, nil) when no user matches.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var doc document[entities.User]
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user := doc.Body
	user.ID = doc.ID.Hex()
	return &user, nil
}

// Insert stores a new user. The unique email index turns a taken email into
// entities.ErrDuplicate.
func (r *UsersRepository) Insert(ctx context.Context, user *entities.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	doc := document[entities.User]{ID: bson.NewObjectID(), Body: *user}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entities.ErrDuplicate
		}
		return err
	}

	user.ID = doc.ID.Hex()
	return nil
}
