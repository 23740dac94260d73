package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/services"
)

var statsService = services.NewStats(
	services.NewMongoUserStore(userCollection),
	services.NewMongoMealStore(mealCollection),
	services.NewMongoRequestStore(requestCollection),
	services.NewMongoReviewStore(reviewsCollection),
)

// GetDashboardStats reports the size of each collection (admin only). The
// four counts are independent snapshots, not one consistent cut.
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	stats, err := statsService.Dashboard(ctx)
	if err != nil {
		http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, helper.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Dashboard stats retrieved successfully",
		"data":    stats,
	})
}
