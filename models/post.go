package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a social-media publication authored by a user.
// Collection: posts
//
// The store owns every Post; clients hold transient, re-fetchable copies and
// mutate only through the API.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Platform     Platform           `bson:"platform" json:"platform"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	TextContent  string             `bson:"text_content" json:"text_content"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ScheduledAt  LocalTime          `bson:"scheduled_at" json:"scheduled_at"`
	Status       Status             `bson:"status" json:"status"`
	ErrorMessage string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// User is an account that owns posts.
// Collection: users
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
