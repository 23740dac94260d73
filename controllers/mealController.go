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

var mealCollection *mongo.Collection = database.OpenCollection(database.Client, "meals")

// CreateMeal adds a meal item (admin only)
func CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(meal); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	meal.ID = primitive.NewObjectID()
	meal.Post_time = time.Now()
	// Derived engagement state starts from zero; only the services layer
	// moves it afterwards.
	meal.LikedBy = []string{}
	meal.Likes = 0
	meal.Ratings = []models.RatingEntry{}
	meal.AverageRating = 0
	meal.Reviews_count = 0

	if _, insertErr := mealCollection.InsertOne(ctx, meal); insertErr != nil {
		http.Error(w, `{"success": false, "message": "Meal could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meal created successfully",
		"data":    meal,
	})
}

// GetMeals lists meals, optionally limited with ?limit=
func GetMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	findOptions := options.Find().SetLimit(int64(limit))
	cursor, err := mealCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving meals"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var allMeals []models.Meal
	if err := cursor.All(ctx, &allMeals); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding meal data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meals retrieved successfully",
		"data":    allMeals,
	})
}

// GetMeal returns a single meal by id
func GetMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	oid, err := primitive.ObjectIDFromHex(mealId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid meal ID format"}`, http.StatusBadRequest)
		return
	}

	var meal models.Meal
	if err := mealCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&meal); err != nil {
		http.Error(w, `{"success": false, "message": "Meal not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meal retrieved successfully",
		"data":    meal,
	})
}

// UpdateMeal patches meal details (admin only). The derived engagement
// fields are not patchable here.
func UpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	oid, err := primitive.ObjectIDFromHex(mealId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid meal ID format"}`, http.StatusBadRequest)
		return
	}

	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	updateObj := bson.M{}
	if meal.Title != nil {
		updateObj["title"] = meal.Title
	}
	if meal.Category != nil {
		updateObj["category"] = meal.Category
	}
	if meal.Image != nil {
		updateObj["image"] = meal.Image
	}
	if meal.Ingredients != nil {
		updateObj["ingredients"] = meal.Ingredients
	}
	if meal.Description != nil {
		updateObj["description"] = meal.Description
	}
	if meal.Price != nil {
		updateObj["price"] = meal.Price
	}
	if len(updateObj) == 0 {
		http.Error(w, `{"success": false, "message": "No updatable fields provided"}`, http.StatusBadRequest)
		return
	}

	result, err := mealCollection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updateObj})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Meal update failed"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "Meal not found"}`, http.StatusNotFound)
		return
	}

	var updatedMeal models.Meal
	if err := mealCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&updatedMeal); err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving updated meal"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meal updated successfully",
		"data":    updatedMeal,
	})
}

// DeleteMeal removes a meal (admin only)
func DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	oid, err := primitive.ObjectIDFromHex(mealId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid meal ID format"}`, http.StatusBadRequest)
		return
	}

	result, err := mealCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting meal"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "Meal not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meal deleted successfully",
	})
}

// GetMealsSortedByLikes lists meals ordered by the likes counter
func GetMealsSortedByLikes(w http.ResponseWriter, r *http.Request) {
	getMealsSorted(w, r, "likes")
}

// GetMealsSortedByReviews lists meals ordered by reviews_count
func GetMealsSortedByReviews(w http.ResponseWriter, r *http.Request) {
	getMealsSorted(w, r, "reviews_count")
}

func getMealsSorted(w http.ResponseWriter, r *http.Request, field string) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: field, Value: -1}})
	cursor, err := mealCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving meals"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var allMeals []models.Meal
	if err := cursor.All(ctx, &allMeals); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding meal data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Meals retrieved successfully",
		"data":    allMeals,
	})
}
