package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingEntry is one user's rating of a meal. A meal holds at most one entry
// per user id.
type RatingEntry struct {
	UserID string `bson:"userId" json:"userId"`
	Rating int    `bson:"rating" json:"rating"`
}

type Meal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             *string            `bson:"title" json:"title" validate:"required,min=2,max=200"`
	Category          *string            `bson:"category" json:"category" validate:"required"`
	Image             *string            `bson:"image,omitempty" json:"image,omitempty"`
	Ingredients       []string           `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Description       *string            `bson:"description,omitempty" json:"description,omitempty"`
	Price             *float64           `bson:"price" json:"price" validate:"required,gt=0"`
	Distributer_email *string            `bson:"distributer_email" json:"distributer_email" validate:"required,email"`
	Post_time         time.Time          `bson:"post_time" json:"post_time"`

	// Derived engagement state. likes mirrors len(likedBy), averageRating
	// mirrors the ratings array and reviews_count mirrors the reviews
	// collection; all three are maintained only through the services layer.
	LikedBy       []string      `bson:"likedBy" json:"likedBy"`
	Likes         int           `bson:"likes" json:"likes"`
	Ratings       []RatingEntry `bson:"ratings" json:"ratings"`
	AverageRating float64       `bson:"averageRating" json:"averageRating"`
	Reviews_count int           `bson:"reviews_count" json:"reviews_count"`
}

// LikeView is the slice of meal state returned by the like toggle.
type LikeView struct {
	LikedBy []string `json:"likedBy"`
	Likes   int      `json:"likes"`
}
