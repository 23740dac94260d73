package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	database "github.com/showrov4g/hostel-management-server/config"
	"github.com/showrov4g/hostel-management-server/helper"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/showrov4g/hostel-management-server/models"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "users")
var validate = validator.New()

// SignUp registers a user with role "user" and no subscription
func SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(user); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking email"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"success": false, "message": "Email already exists"}`, http.StatusConflict)
		return
	}

	password := HashPassword(*user.Password)
	user.Password = &password

	user.ID = primitive.NewObjectID()
	user.Role = models.RoleUser
	user.Created_at = time.Now()
	user.Updated_at = time.Now()

	if _, insertErr := userCollection.InsertOne(ctx, user); insertErr != nil {
		http.Error(w, `{"success": false, "message": "User creation failed"}`, http.StatusInternalServerError)
		return
	}

	token, err := helper.GenerateToken(*user.Email, user.Role)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Token generation failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"data": map[string]interface{}{
			"id":           user.ID.Hex(),
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"subscription": user.Subscription,
			"token":        token,
		},
	})
}

// Login verifies credentials and issues a token carrying {email, role}
func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	var foundUser models.User

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if user.Email == nil || user.Password == nil {
		http.Error(w, `{"success": false, "message": "Email and password are required"}`, http.StatusBadRequest)
		return
	}

	err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
	if err != nil {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusUnauthorized)
		return
	}

	passwordIsValid, msg := VerifyPassword(*user.Password, *foundUser.Password)
	if !passwordIsValid {
		http.Error(w, `{"success": false, "message": "`+msg+`"}`, http.StatusUnauthorized)
		return
	}

	token, err := helper.GenerateToken(*foundUser.Email, foundUser.Role)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Token generation failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"data": map[string]interface{}{
			"email":        foundUser.Email,
			"name":         foundUser.Name,
			"role":         foundUser.Role,
			"subscription": foundUser.Subscription,
			"token":        token,
		},
	})
}

// GetUsers lists all users (admin only)
func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	projectStage := bson.D{
		{Key: "$project", Value: bson.D{
			{Key: "password", Value: 0},
		}},
	}

	cursor, err := userCollection.Aggregate(ctx, mongo.Pipeline{projectStage})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error occurred while listing users"}`, http.StatusInternalServerError)
		return
	}

	var allUsers []bson.M
	if err = cursor.All(ctx, &allUsers); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding user data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Users retrieved successfully",
		"data":    allUsers,
	})
}

// GetUserByEmail returns one user; callers may only read themselves unless admin
func GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	email := mux.Vars(r)["email"]
	callerEmail, callerRole := middleware.GetUserFromContext(r)
	if email != callerEmail && callerRole != models.RoleAdmin {
		http.Error(w, `{"success": false, "message": "forbidden access"}`, http.StatusForbidden)
		return
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusNotFound)
		return
	}
	user.Password = nil

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "User retrieved successfully",
		"data":    user,
	})
}

// MakeAdmin promotes a user to the admin role (admin only)
func MakeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	userId := mux.Vars(r)["user_id"]
	oid, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid user ID format"}`, http.StatusBadRequest)
		return
	}

	result, err := userCollection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now()}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error promoting user"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "User promoted to admin successfully",
	})
}

// DeleteUser removes a user (admin only)
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	userId := mux.Vars(r)["user_id"]
	oid, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid user ID format"}`, http.StatusBadRequest)
		return
	}

	result, err := userCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting user"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}

// UpdateLastSignIn records the caller's last sign-in time
func UpdateLastSignIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	email, _ := middleware.GetUserFromContext(r)

	_, err := userCollection.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"lastSignInTime": time.Now()}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error updating sign-in time"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Last sign-in time updated",
	})
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	if err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)); err != nil {
		return false, "Incorrect password"
	}
	return true, ""
}
