// Package main initializes and starts the HabitTracker HTTP server,
// setting up configuration, logging, the document store, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/HabitTracker/internal/auth"
	"github.com/atinyakov/HabitTracker/internal/config"
	"github.com/atinyakov/HabitTracker/internal/logger"
	"github.com/atinyakov/HabitTracker/internal/server/handler/http"
	"github.com/atinyakov/HabitTracker/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if err := options.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the configured document store.
	st, err := openStores(ctx, options)
	if err != nil {
		zapLogger.Fatal("cannot init store", zap.String("store", options.Store), zap.Error(err))
	}
	defer st.close()

	// Initialize business-logic services.
	tokens := auth.NewTokenManager(options.JWTSecret)
	authService := service.NewAuthService(st.users, tokens)
	taskService := service.NewTaskService(st.tasks, tokens)
	activityService := service.NewActivityService(st.activities, tokens)
	mealService := service.NewMealService(st.meals, st.ingredients, tokens)
	ingredientService := service.NewIngredientService(st.ingredients, tokens)

	// Build the router with middleware and routes.
	router := http.NewRouter(
		&http.AuthHandler{AuthService: authService, Logger: zapLogger},
		&http.TaskHandler{TaskService: taskService, Logger: zapLogger},
		&http.ActivityHandler{ActivityService: activityService, Logger: zapLogger},
		&http.NutritionHandler{MealService: mealService, IngredientService: ingredientService, Logger: zapLogger},
		zapLogger,
		options.Origins(),
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zapLogger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port), zap.String("store", options.Store))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
