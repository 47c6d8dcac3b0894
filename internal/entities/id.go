package entities

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDLength is the length of a hex-encoded record identifier.
const IDLength = 24

// NewID returns a fresh 24-character hexadecimal identifier.
// Both backends use the ObjectID layout so ids survive a move between them.
func NewID() string {
	return bson.NewObjectID().Hex()
}

// ParseID validates a hex identifier taken from a request path.
func ParseID(s string) (bson.ObjectID, error) {
	if len(s) != IDLength {
		return bson.NilObjectID, ErrInvalidID
	}
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// CanonicalID returns the lowercase spelling of a well-formed identifier, so
// "6AD5..." and "6ad5..." name the same record in every store.
func CanonicalID(s string) (string, error) {
	oid, err := ParseID(s)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}
