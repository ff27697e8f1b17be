package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/quizwhiz/backend/internal/analytics"
	"github.com/quizwhiz/backend/internal/auth"
	"github.com/quizwhiz/backend/internal/cache"
	"github.com/quizwhiz/backend/internal/categories"
	"github.com/quizwhiz/backend/internal/database"
	"github.com/quizwhiz/backend/internal/generator"
	"github.com/quizwhiz/backend/internal/middleware"
	"github.com/quizwhiz/backend/internal/quiz"
	"github.com/rs/cors"
)

func main() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	provider, err := generator.NewProviderFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	gateway := generator.NewGateway(provider)

	// Handlers
	authHandler := auth.NewHandler(db, []byte(secret))
	categoriesHandler := categories.NewHandler(
		categories.NewService(gateway),
		cache.NewMemory(cache.DefaultTTL),
	)
	quizHandler := quiz.NewHandler(quiz.NewService(quiz.NewStore(db), gateway))
	analyticsHandler := analytics.NewHandler(analytics.NewService(analytics.NewStore(db)))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(secret)))
	protected.HandleFunc("/auth/validate-auth-token", authHandler.ValidateAuthToken).Methods("GET")

	protected.HandleFunc("/categories", categoriesHandler.GetCategories).Methods("POST")
	protected.HandleFunc("/categories/search", categoriesHandler.SearchCategories).Methods("POST")
	protected.HandleFunc("/categories/clearCache", categoriesHandler.ClearCache).Methods("POST")
	protected.HandleFunc("/categories/subcategories", categoriesHandler.GetSubcategories).Methods("POST")
	protected.HandleFunc("/categories/subcategories/search", categoriesHandler.SearchSubcategories).Methods("POST")

	protected.HandleFunc("/quiz/start", quizHandler.Start).Methods("POST")
	protected.HandleFunc("/quiz/submit-answer", quizHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/quiz/resume", quizHandler.Resume).Methods("POST")
	protected.HandleFunc("/quiz/preview/{quizId}", quizHandler.Preview).Methods("POST")

	protected.HandleFunc("/analytics/user", analyticsHandler.GetUserAnalytics).Methods("POST")
	protected.HandleFunc("/analytics/category", analyticsHandler.GetCategoryAnalytics).Methods("POST")
	protected.HandleFunc("/analytics/history", analyticsHandler.GetQuizHistory).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
