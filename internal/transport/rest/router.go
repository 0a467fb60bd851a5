package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"analyseme/internal/service"
	"analyseme/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	AssessmentService *service.AssessmentService
	PressureService   *service.PressureService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	analyticsHandler := handler.NewAnalyticsHandler(c.PressureService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/questions", assessmentHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{sessionID}/answers/{questionID}", assessmentHandler.Answer).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/assessments/{sessionID}/context", assessmentHandler.Context).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/assessments/{sessionID}/complete", assessmentHandler.Complete).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{sessionID}/retry", assessmentHandler.Retry).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{sessionID}/result", assessmentHandler.Result).Methods("GET", "OPTIONS")

	v1.HandleFunc("/analytics/pressure", analyticsHandler.Pressure).Methods("POST", "OPTIONS")
	v1.HandleFunc("/analytics/pressure/compare", analyticsHandler.Compare).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
