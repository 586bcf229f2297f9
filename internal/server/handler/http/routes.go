// Package http provides HTTP routing and middleware configuration
// for the HabitTracker API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/atinyakov/HabitTracker/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the HabitTracker API.
//
// Routes:
//
//	GET  /                         → liveness text
//	GET  /metrics                  → prometheus exposition
//	POST /auth/register, /auth/login
//	POST /task/{add,update,complete,incomplete,delete,get}
//	POST /activity/{add,update,delete,get}
//	POST /nutrition/{addMeal,update,delete,meals,mealNutrition,addIngredient,ingredients}
//
// Middleware chain (applied in order):
//  1. RequestID, Recoverer      : request ids and panic recovery
//  2. CORS for allowedOrigins   : browser clients
//  3. WithMetrics               : request duration per route
//  4. WithRequestLogging(logger): logs served requests
//  5. AllowContentType("application/json") on the API routes
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	activityHandler *ActivityHandler,
	nutritionHandler *NutritionHandler,
	logger *zap.Logger,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.WithMetrics)
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("API is running"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		// Only allow requests with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/task", func(r chi.Router) {
			r.Post("/add", taskHandler.Add)
			r.Post("/update", taskHandler.Update)
			r.Post("/complete", taskHandler.Complete)
			r.Post("/incomplete", taskHandler.Incomplete)
			r.Post("/delete", taskHandler.Delete)
			r.Post("/get", taskHandler.Get)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Post("/add", activityHandler.Add)
			r.Post("/update", activityHandler.Update)
			r.Post("/delete", activityHandler.Delete)
			r.Post("/get", activityHandler.Get)
		})

		r.Route("/nutrition", func(r chi.Router) {
			r.Post("/addMeal", nutritionHandler.AddMeal)
			r.Post("/update", nutritionHandler.UpdateMeal)
			r.Post("/delete", nutritionHandler.DeleteMeal)
			r.Post("/meals", nutritionHandler.Meals)
			r.Post("/mealNutrition", nutritionHandler.MealNutrition)
			r.Post("/addIngredient", nutritionHandler.AddIngredient)
			r.Post("/ingredients", nutritionHandler.Ingredients)
		})
	})

	return r
}
