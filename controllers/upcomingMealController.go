package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/showrov4g/hostel-management-server/config"
	"github.com/showrov4g/hostel-management-server/models"
)

var upcomingMealCollection *mongo.Collection = database.OpenCollection(database.Client, "upcoming")

// CreateUpcomingMeal adds an upcoming meal (admin only)
func CreateUpcomingMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var upcoming models.UpcomingMeal
	if err := json.NewDecoder(r.Body).Decode(&upcoming); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(upcoming); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	upcoming.ID = primitive.NewObjectID()
	upcoming.Created_at = time.Now()

	if _, insertErr := upcomingMealCollection.InsertOne(ctx, upcoming); insertErr != nil {
		http.Error(w, `{"success": false, "message": "Upcoming meal could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Upcoming meal created successfully",
		"data":    upcoming,
	})
}

// GetUpcomingMeals lists upcoming meals, optionally limited with ?limit=
func GetUpcomingMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	findOptions := options.Find().SetLimit(int64(limit))
	cursor, err := upcomingMealCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving upcoming meals"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var upcomingMeals []models.UpcomingMeal
	if err := cursor.All(ctx, &upcomingMeals); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding upcoming meal data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Upcoming meals retrieved successfully",
		"data":    upcomingMeals,
	})
}

// GetUpcomingMeal returns a single upcoming meal by id
func GetUpcomingMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	oid, err := primitive.ObjectIDFromHex(mealId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid meal ID format"}`, http.StatusBadRequest)
		return
	}

	var upcoming models.UpcomingMeal
	if err := upcomingMealCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&upcoming); err != nil {
		http.Error(w, `{"success": false, "message": "Upcoming meal not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Upcoming meal retrieved successfully",
		"data":    upcoming,
	})
}
