package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UpcomingMeal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             *string            `bson:"title" json:"title" validate:"required,min=2,max=200"`
	Category          *string            `bson:"category" json:"category" validate:"required"`
	Image             *string            `bson:"image,omitempty" json:"image,omitempty"`
	Description       *string            `bson:"description,omitempty" json:"description,omitempty"`
	Price             *float64           `bson:"price" json:"price" validate:"required,gt=0"`
	Distributer_email *string            `bson:"distributer_email" json:"distributer_email" validate:"required,email"`
	Publish_date      *time.Time         `bson:"publish_date,omitempty" json:"publish_date,omitempty"`
	Created_at        time.Time          `bson:"created_at" json:"created_at"`
}
