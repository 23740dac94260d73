package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the closed set of meal-request states. The only permitted
// transition is Pending -> Delivered.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusDelivered RequestStatus = "delivered"
)

func (s RequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusDelivered
}

type Request struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Meal_id      string             `bson:"meal_id" json:"meal_id" validate:"required"`
	Title        *string            `bson:"title,omitempty" json:"title,omitempty"`
	User_email   string             `bson:"email" json:"email"`
	Status       RequestStatus      `bson:"status" json:"status"`
	Requested_at time.Time          `bson:"requested_at" json:"requested_at"`
}
