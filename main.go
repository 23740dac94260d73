package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	database "github.com/showrov4g/hostel-management-server/config"
	controller "github.com/showrov4g/hostel-management-server/controllers"
	middleware "github.com/showrov4g/hostel-management-server/middlewares"
	routes "github.com/showrov4g/hostel-management-server/routes"
)

func main() {
	database.LoadEnv()
	defer database.Logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	router := mux.NewRouter()

	// Public Routes (No Authentication)
	routes.UserPublicRoutes(router)
	routes.MealPublicRoutes(router)
	routes.UpcomingMealPublicRoutes(router)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.UserProtectedRoutes(securedRoutes)
	routes.MealProtectedRoutes(securedRoutes)
	routes.RequestProtectedRoutes(securedRoutes)
	routes.ReviewProtectedRoutes(securedRoutes)
	routes.UpcomingMealProtectedRoutes(securedRoutes)
	routes.DashboardProtectedRoutes(securedRoutes)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("server is running"))
	}).Methods(http.MethodGet)

	// Out-of-band repair for the reviews_count saga: recompute counters from
	// the reviews collection on a schedule.
	reconcileSpec := os.Getenv("RECONCILE_SPEC")
	if reconcileSpec == "" {
		reconcileSpec = "@every 10m"
	}
	c := cron.New()
	_, err := c.AddFunc(reconcileSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		repaired, err := controller.ReviewService.Reconcile(ctx)
		if err != nil {
			database.Logger.Error("review count reconciliation failed", zap.Error(err))
			return
		}
		if repaired > 0 {
			database.Logger.Info("review count reconciliation repaired meals", zap.Int("repaired", repaired))
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	c.Start()
	defer c.Stop()

	database.Logger.Info("server running", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
