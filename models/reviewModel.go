package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID   string             `bson:"productId" json:"productId" validate:"required"`
	UserID      string             `bson:"userId" json:"userId"`
	ReviewsText string             `bson:"reviewsText" json:"reviewsText" validate:"required,min=1,max=2000"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}
