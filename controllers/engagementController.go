package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	database "github.com/showrov4g/hostel-management-server/config"
	"github.com/showrov4g/hostel-management-server/helper"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/showrov4g/hostel-management-server/services"
)

var engagementService = services.NewEngagement(
	services.NewMongoMealStore(mealCollection),
	database.Logger,
)

// ToggleLike flips the caller's like on a meal and returns the updated
// membership and counter
func ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	userEmail, _ := middleware.GetUserFromContext(r)

	view, err := engagementService.ToggleLike(ctx, mealId, userEmail)
	if err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Like toggled successfully",
		"data":    view,
	})
}

// RateMeal upserts the caller's 1-5 rating and returns the new average
func RateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	mealId := mux.Vars(r)["meal_id"]
	userEmail, _ := middleware.GetUserFromContext(r)

	var body struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	average, err := engagementService.SubmitRating(ctx, mealId, userEmail, body.Rating)
	if err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Rating added/updated successfully",
		"data": map[string]interface{}{
			"averageRating": average,
		},
	})
}
