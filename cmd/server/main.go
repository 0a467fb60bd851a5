package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"analyseme/internal/cache"
	"analyseme/internal/catalog"
	"analyseme/internal/config"
	"analyseme/internal/service"
	"analyseme/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	cfg := config.Load()

	// Validate the question catalog before anything can serve a request.
	// A bad catalog is fatal.
	cat, err := catalog.Default()
	if err != nil {
		log.Fatal("Invalid question catalog: ", err)
	}
	log.Printf("Catalog loaded: %d questions, weights sum to %d", cat.Len(), catalog.TotalWeight)

	// Bedrock enrichment config
	bedrockCfg := config.DefaultBedrockConfig()
	log.Printf("Enrichment config:")
	log.Printf("  Model:    %s", bedrockCfg.ModelID)
	log.Printf("  Timeout:  %dms", bedrockCfg.TimeoutMS)
	if bedrockCfg.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (all assessments will use the fallback response)")
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis: ", err)
	}
	log.Println("Connected to Redis")

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	resultCache := cache.NewResultCache(rdb)

	// Initialize services
	scoringSvc := service.NewScoringService(cat)
	enrichmentSvc := service.NewEnrichmentService(bedrockCfg)
	assessmentSvc := service.NewAssessmentService(scoringSvc, enrichmentSvc, sessionCache, resultCache)
	pressureSvc := service.NewPressureService()

	// Create router with container
	container := &rest.Container{
		AssessmentService: assessmentSvc,
		PressureService:   pressureSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/assessments")
		log.Println("  GET  /v1/assessments/questions")
		log.Println("  PUT  /v1/assessments/{sessionID}/answers/{questionID}")
		log.Println("  PUT  /v1/assessments/{sessionID}/context")
		log.Println("  POST /v1/assessments/{sessionID}/complete")
		log.Println("  POST /v1/assessments/{sessionID}/retry")
		log.Println("  GET  /v1/assessments/{sessionID}/result")
		log.Println("  POST /v1/analytics/pressure")
		log.Println("  POST /v1/analytics/pressure/compare")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe: ", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exited")
}
