package routes

import (
	"net/http"

	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/gorilla/mux"
)

func MealPublicRoutes(router *mux.Router) {
	router.HandleFunc("/meals", controller.GetMeals).Methods(http.MethodGet)
	router.HandleFunc("/meals/sorted-by-likes", controller.GetMealsSortedByLikes).Methods(http.MethodGet)
	router.HandleFunc("/meals/sorted-by-reviews", controller.GetMealsSortedByReviews).Methods(http.MethodGet)
}

func MealProtectedRoutes(router *mux.Router) {
	router.Handle("/meals", middleware.RequireAdmin(http.HandlerFunc(controller.CreateMeal))).Methods(http.MethodPost)
	router.HandleFunc("/meals/meal/{meal_id}", controller.GetMeal).Methods(http.MethodGet)
	router.Handle("/meals/update/{meal_id}", middleware.RequireAdmin(http.HandlerFunc(controller.UpdateMeal))).Methods(http.MethodPatch)
	router.Handle("/meals/delete/{meal_id}", middleware.RequireAdmin(http.HandlerFunc(controller.DeleteMeal))).Methods(http.MethodDelete)

	// engagement subsystem
	router.HandleFunc("/meals/like/{meal_id}", controller.ToggleLike).Methods(http.MethodPatch)
	router.HandleFunc("/meals/rate/{meal_id}", controller.RateMeal).Methods(http.MethodPost)
}
