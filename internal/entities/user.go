package entities

import "time"

// User is a registered account. Email is the lookup key and is unique.
type User struct {
	ID           string    `gorm:"primaryKey;size:24" bson:"-" json:"_id"`
	Name         string    `gorm:"size:255" bson:"name" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	PasswordHash string    `gorm:"column:password;size:255;not null" bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
