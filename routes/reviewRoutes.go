package routes

import (
	"net/http"

	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/gorilla/mux"
)

func ReviewProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/meals/review/{meal_id}", controller.CreateReview).Methods(http.MethodPost)
	router.HandleFunc("/meals/review/{review_id}", controller.UpdateReview).Methods(http.MethodPatch)
	router.HandleFunc("/meals/review/{review_id}", controller.DeleteReview).Methods(http.MethodDelete)
	router.Handle("/reviews", middleware.RequireAdmin(http.HandlerFunc(controller.GetAllReviews))).Methods(http.MethodGet)
	router.HandleFunc("/reviews/{meal_id}", controller.GetReviewsByMeal).Methods(http.MethodGet)
}
