package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of user roles. Free-form role strings are rejected
// at the boundary.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email           *string            `bson:"email" json:"email" validate:"required,email"`
	Password        *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Role            Role               `bson:"role" json:"role"`
	Subscription    bool               `bson:"subscription" json:"subscription"`
	Badge           *string            `bson:"badge,omitempty" json:"badge,omitempty"`
	LastSignInTime  *time.Time         `bson:"lastSignInTime,omitempty" json:"lastSignInTime,omitempty"`
	Created_at      time.Time          `bson:"created_at" json:"created_at"`
	Updated_at      time.Time          `bson:"updated_at" json:"updated_at"`
}
