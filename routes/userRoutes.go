package routes

import (
	"net/http"

	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	"github.com/gorilla/mux"
)

func UserPublicRoutes(router *mux.Router) {
	router.HandleFunc("/users/signup", controller.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/users/login", controller.Login).Methods(http.MethodPost)
}

func UserProtectedRoutes(router *mux.Router) {
	router.Handle("/users", middleware.RequireAdmin(http.HandlerFunc(controller.GetUsers))).Methods(http.MethodGet)
	router.HandleFunc("/users/last-sign-in", controller.UpdateLastSignIn).Methods(http.MethodPatch)
	router.Handle("/users/admin/{user_id}", middleware.RequireAdmin(http.HandlerFunc(controller.MakeAdmin))).Methods(http.MethodPatch)
	router.HandleFunc("/users/{email}", controller.GetUserByEmail).Methods(http.MethodGet)
	router.Handle("/users/{user_id}", middleware.RequireAdmin(http.HandlerFunc(controller.DeleteUser))).Methods(http.MethodDelete)
}
