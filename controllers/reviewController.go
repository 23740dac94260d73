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

var reviewsCollection *mongo.Collection = database.OpenCollection(database.Client, "reviews")

// ReviewService is shared with main, which schedules its Reconcile.
var ReviewService = services.NewReviews(
	services.NewMongoReviewStore(reviewsCollection),
	services.NewMongoMealStore(mealCollection),
	database.Logger,
)

// CreateReview inserts a review and bumps the meal's reviews_count. Both
// halves of the write are reported, so a partial failure is visible to the
// caller instead of silently diverging.
func CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	userEmail, _ := middleware.GetUserFromContext(r)

	var body struct {
		ReviewsText string `json:"reviewsText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	result, err := ReviewService.CreateReview(ctx, mealId, userEmail, body.ReviewsText)
	if err != nil && !errors.Is(err, helper.ErrPartialFailure) {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		// Review persisted, counter did not. Report both halves.
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Review added but the review count update failed",
			"data":    result,
		})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Review added and meal review count updated successfully",
		"data":    result,
	})
}

// GetReviewsByMeal lists reviews for one meal
func GetReviewsByMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]

	cursor, err := reviewsCollection.Find(ctx, bson.M{"productId": mealId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving reviews"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding review data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Reviews retrieved successfully",
		"data":    reviews,
	})
}

// GetAllReviews lists every review (admin only)
func GetAllReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	cursor, err := reviewsCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving reviews"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding review data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Reviews retrieved successfully",
		"data":    reviews,
	})
}

// UpdateReview edits the text of the caller's own review
func UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	reviewId := mux.Vars(r)["review_id"]
	oid, err := primitive.ObjectIDFromHex(reviewId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid review ID format"}`, http.StatusBadRequest)
		return
	}

	var body struct {
		ReviewsText string `json:"reviewsText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ReviewsText == "" {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	userEmail, role := middleware.GetUserFromContext(r)
	filter := bson.M{"_id": oid}
	if role != models.RoleAdmin {
		filter["userId"] = userEmail
	}

	result, err := reviewsCollection.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"reviewsText": body.ReviewsText, "updated_at": time.Now()}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Review update failed"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "Review not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Review updated successfully",
	})
}

// DeleteReview removes a review. The meal's reviews_count catches up at the
// next reconciliation run.
func DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	reviewId := mux.Vars(r)["review_id"]
	oid, err := primitive.ObjectIDFromHex(reviewId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid review ID format"}`, http.StatusBadRequest)
		return
	}

	userEmail, role := middleware.GetUserFromContext(r)
	filter := bson.M{"_id": oid}
	if role != models.RoleAdmin {
		filter["userId"] = userEmail
	}

	result, err := reviewsCollection.DeleteOne(ctx, filter)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting review"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "Review not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Review deleted successfully",
	})
}

// ReconcileReviews recomputes reviews_count for every meal from the reviews
// collection (admin only)
func ReconcileReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	repaired, err := ReviewService.Reconcile(ctx)
	if err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Review counts reconciled",
		"data": map[string]interface{}{
			"repaired": repaired,
		},
	})
}
