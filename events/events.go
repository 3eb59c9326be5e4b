package events

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"media-planner/models"
)

// Event types published on the delivery topic.
const (
	PostDeliverySucceeded = "post.delivery_succeeded"
	PostDeliveryFailed    = "post.delivery_failed"
)

// DeliveryResultEvent records the outcome of one delivery attempt, whether
// triggered manually or by the dispatcher.
type DeliveryResultEvent struct {
	PostID   primitive.ObjectID `json:"post_id"`
	UserID   primitive.ObjectID `json:"user_id"`
	Platform models.Platform    `json:"platform"`
	Status   models.Status      `json:"status"`
	Error    string             `json:"error,omitempty"`
	Trigger  string             `json:"trigger"` // "manual" or "dispatcher"
}
