package routes

import (
	"net/http"

	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/gorilla/mux"
)

func RequestProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/meals/request", controller.CreateRequest).Methods(http.MethodPost)
	router.Handle("/meals/request/all", middleware.RequireAdmin(http.HandlerFunc(controller.GetAllRequests))).Methods(http.MethodGet)
	router.Handle("/meals/request/status/{request_id}", middleware.RequireAdmin(http.HandlerFunc(controller.UpdateRequestStatus))).Methods(http.MethodPatch)
	router.HandleFunc("/meals/request/{email}", controller.GetRequestsByEmail).Methods(http.MethodGet)
	router.HandleFunc("/meals/request/{request_id}", controller.DeleteRequest).Methods(http.MethodDelete)
}
