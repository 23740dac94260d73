package routes

import (
	"net/http"

	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/gorilla/mux"
)

func DashboardProtectedRoutes(router *mux.Router) {
	router.Handle("/dashboard/stats", middleware.RequireAdmin(http.HandlerFunc(controller.GetDashboardStats))).Methods(http.MethodGet)
	router.Handle("/dashboard/reconcile-reviews", middleware.RequireAdmin(http.HandlerFunc(controller.ReconcileReviews))).Methods(http.MethodPost)
}
