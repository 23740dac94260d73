package middleware

import (
	"context"
	"net/http"
	"strings"

	helper "github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

// Context keys to store user information
type contextKey string

const (
	EmailKey contextKey = "email"
	RoleKey  contextKey = "role"
)

// Authentication middleware for Gorilla Mux
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientToken := r.Header.Get("Authorization")
		if clientToken == "" {
			http.Error(w, `{"success": false, "message": "No Authorization header provided"}`, http.StatusUnauthorized)
			return
		}

		// Token format should be "Bearer <token>"
		tokenParts := strings.Split(clientToken, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			http.Error(w, `{"success": false, "message": "Invalid Authorization format"}`, http.StatusUnauthorized)
			return
		}

		claims, err := helper.ValidateToken(tokenParts[1])
		if err != nil {
			http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, http.StatusUnauthorized)
			return
		}

		// Store user details in the request context
		ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext retrieves the caller's identity from the request context
func GetUserFromContext(r *http.Request) (email string, role models.Role) {
	email, _ = r.Context().Value(EmailKey).(string)
	role, _ = r.Context().Value(RoleKey).(models.Role)
	return
}
