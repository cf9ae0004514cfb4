package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carescript/backend/internal/adapters/cache"
	"github.com/carescript/backend/internal/adapters/database"
	"github.com/carescript/backend/internal/adapters/providers/geolocation"
	"github.com/carescript/backend/internal/adapters/providers/routing"
	"github.com/carescript/backend/internal/api/handlers"
	"github.com/carescript/backend/internal/api/middleware"
	"github.com/carescript/backend/internal/api/routes"
	"github.com/carescript/backend/internal/application/services"
	"github.com/carescript/backend/internal/domain/providers"
	"github.com/carescript/backend/internal/infrastructure/clients/openai"
	"github.com/carescript/backend/internal/infrastructure/clients/postgres"
	"github.com/carescript/backend/internal/infrastructure/clients/redis"
	"github.com/carescript/backend/internal/infrastructure/observability"
	"github.com/carescript/backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("carescript-api", cfg.Server.Env)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters
	facilityAdapter := database.NewFacilityAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	entryAdapter := database.NewEntryAdapter(pgClient)

	var geolocationProvider providers.GeolocationProvider
	var routeProvider providers.RouteProvider
	if cfg.Maps.APIKey == "" {
		log.Println("Warning: GOOGLE_MAPS_API_KEY is not set; using mock geolocation provider")
		geolocationProvider = geolocation.NewMockProvider()
		routeProvider = routing.NewGoogleProvider("")
	} else {
		geolocationProvider = geolocation.NewGoogleProvider(cfg.Maps.APIKey)
		routeProvider = routing.NewGoogleProvider(cfg.Maps.APIKey)
	}

	var transcriptionProvider providers.TranscriptionProvider
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; transcription will fail until configured")
	}
	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}
	transcriptionProvider = openaiClient

	// Initialize services
	locatorService := services.NewFacilityLocatorService(facilityAdapter, geolocationProvider)
	routeService := services.NewRouteService(routeProvider, geolocationProvider, cacheProvider)
	profileService := services.NewProfileService(userAdapter)
	transcriptionService := services.NewTranscriptionService(transcriptionProvider, entryAdapter)

	// Initialize handlers
	geoHandler := handlers.NewGeoHandler(locatorService)
	distanceHandler := handlers.NewDistanceHandler(routeService)
	profileHandler := handlers.NewProfileHandler(profileService)
	transcriptionHandler := handlers.NewTranscriptionHandler(transcriptionService)

	// Set up router
	router := routes.NewRouter(
		geoHandler,
		distanceHandler,
		profileHandler,
		transcriptionHandler,
		middleware.IdentityConfig{
			CookieName: cfg.Identity.CookieName,
			Secure:     cfg.Server.IsProduction(),
		},
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
