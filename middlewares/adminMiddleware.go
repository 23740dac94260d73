package middleware

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/showrov4g/hostel-management-server/config"
	"github.com/showrov4g/hostel-management-server/models"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "users")

// IsAdmin answers the capability check against the users collection. The
// role stored in the database wins over the role baked into the token, so a
// demotion takes effect without waiting for token expiry.
func IsAdmin(ctx context.Context, email string) bool {
	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return false
	}
	return user.Role == models.RoleAdmin
}

// RequireAdmin guards admin-only routes. Must sit behind Authentication.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		email, _ := GetUserFromContext(r)
		if email == "" || !IsAdmin(ctx, email) {
			http.Error(w, `{"success": false, "message": "forbidden access"}`, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
