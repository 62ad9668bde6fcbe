package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/classmate-ai/backend/internal/auth"
	"github.com/classmate-ai/backend/internal/database"
	"github.com/classmate-ai/backend/internal/middleware"
	"github.com/classmate-ai/backend/internal/problems"
	"github.com/classmate-ai/backend/internal/profile"
	"github.com/classmate-ai/backend/internal/rating"
	"github.com/classmate-ai/backend/internal/tutor"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services. The tutor's LLM backend doubles as the answer
	// solver behind the problem backfill.
	llm := tutor.NewLLMClient()

	problemStore := problems.NewStore(db)
	ratingStore := rating.NewStore(db)
	tutorStore := tutor.NewStore(db)
	profileStore := profile.NewStore(db)

	ratingService := rating.NewService(ratingStore, problemStore)
	problemService := problems.NewService(problemStore)
	tutorService := tutor.NewService(llm, tutorStore, problemService, ratingService)
	problemService.SetSolver(tutorService)
	profileService := profile.NewService(profileStore, ratingStore)

	authHandler := auth.NewHandler(db)
	problemHandler := problems.NewHandler(problemService)
	ratingHandler := rating.NewHandler(ratingService)
	tutorHandler := tutor.NewHandler(tutorService)
	profileHandler := profile.NewHandler(profileService)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Logging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(auth.JWTSecret))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	problemHandler.RegisterRoutes(protected)
	ratingHandler.RegisterRoutes(protected)
	tutorHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Background answer backfill
	if os.Getenv("FILL_ANSWERS_ENABLED") == "true" {
		go problemService.StartFillAnswersWorker(context.Background())
	}

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
