package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `json:"id" gorm:"column:id;type:varchar(24);primaryKey"`
	Username  string    `json:"username" gorm:"column:username;type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"column:password;type:text;not null"`
	FirstName string    `json:"firstName" gorm:"column:first_name;type:text"`
	LastName  string    `json:"lastName" gorm:"column:last_name;type:text"`
	CreatedAt time.Time `json:"-" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"-" gorm:"column:updated_at"`
}

// TableName overrides the default table name used by GORM
func (User) TableName() string {
	return "users"
}

// User ids share the ObjectID format so they can be stored as album owners next to Mongo ids.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	return
}

// Serialize drops everything but the public profile.
func (u User) Serialize() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RegisterBody struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
}

type LoginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthToken struct {
	AuthToken string `json:"authToken"`
}
