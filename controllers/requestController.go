package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/showrov4g/hostel-management-server/config"
	"github.com/showrov4g/hostel-management-server/helper"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/showrov4g/hostel-management-server/models"
	"github.com/showrov4g/hostel-management-server/services"
)

var requestCollection *mongo.Collection = database.OpenCollection(database.Client, "request")

var requestService = services.NewRequests(
	services.NewMongoRequestStore(requestCollection),
	services.NewMongoUserStore(userCollection),
	database.Logger,
)

// CreateRequest files a meal request for the caller. Subscription is the
// gate: users without one are rejected before anything is written.
func CreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	userEmail, _ := middleware.GetUserFromContext(r)

	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(req); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	created, err := requestService.Create(ctx, userEmail, &req)
	if err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meal request created successfully",
		"data":    created,
	})
}

// UpdateRequestStatus marks a request delivered (admin only). Idempotent on
// already-delivered requests.
func UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	requestId := mux.Vars(r)["request_id"]

	if err := requestService.Advance(ctx, requestId); err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Request marked as delivered",
	})
}

// GetAllRequests lists every meal request (admin only)
func GetAllRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	cursor, err := requestCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving requests"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding request data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Requests retrieved successfully",
		"data":    requests,
	})
}

// GetRequestsByEmail lists the requests of one user; callers may only read
// their own unless admin
func GetRequestsByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	email := mux.Vars(r)["email"]
	callerEmail, callerRole := middleware.GetUserFromContext(r)
	if email != callerEmail && callerRole != models.RoleAdmin {
		http.Error(w, `{"success": false, "message": "forbidden access"}`, http.StatusForbidden)
		return
	}

	cursor, err := requestCollection.Find(ctx, bson.M{"email": email})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving requests"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding request data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Requests retrieved successfully",
		"data":    requests,
	})
}

// DeleteRequest removes a request in any state. Allowed for the request
// owner or an admin.
func DeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	requestId := mux.Vars(r)["request_id"]
	oid, err := primitive.ObjectIDFromHex(requestId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request ID format"}`, http.StatusBadRequest)
		return
	}

	var req models.Request
	findErr := requestCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if errors.Is(findErr, mongo.ErrNoDocuments) {
		http.Error(w, `{"success": false, "message": "Request not found"}`, http.StatusNotFound)
		return
	} else if findErr != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving request"}`, http.StatusInternalServerError)
		return
	}

	callerEmail, callerRole := middleware.GetUserFromContext(r)
	if req.User_email != callerEmail && callerRole != models.RoleAdmin {
		http.Error(w, `{"success": false, "message": "forbidden access"}`, http.StatusForbidden)
		return
	}

	if err := requestService.Delete(ctx, requestId); err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Request deleted successfully",
	})
}
