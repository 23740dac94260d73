package routes

import (
	"net/http"

	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/gorilla/mux"
)

func UpcomingMealPublicRoutes(router *mux.Router) {
	router.HandleFunc("/upcoming-meal", controller.GetUpcomingMeals).Methods(http.MethodGet)
	router.HandleFunc("/upcoming-meal/{meal_id}", controller.GetUpcomingMeal).Methods(http.MethodGet)
}

func UpcomingMealProtectedRoutes(router *mux.Router) {
	router.Handle("/upcoming-meal", middleware.RequireAdmin(http.HandlerFunc(controller.CreateUpcomingMeal))).Methods(http.MethodPost)
}
