package routes

import (
	"net/http"

	"github.com/carescript/backend/internal/api/handlers"
	"github.com/carescript/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	geoHandler           *handlers.GeoHandler
	distanceHandler      *handlers.DistanceHandler
	profileHandler       *handlers.ProfileHandler
	transcriptionHandler *handlers.TranscriptionHandler

	identity middleware.IdentityConfig
}

// NewRouter creates a new router
func NewRouter(
	geoHandler *handlers.GeoHandler,
	distanceHandler *handlers.DistanceHandler,
	profileHandler *handlers.ProfileHandler,
	transcriptionHandler *handlers.TranscriptionHandler,
	identity middleware.IdentityConfig,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		geoHandler:           geoHandler,
		distanceHandler:      distanceHandler,
		profileHandler:       profileHandler,
		transcriptionHandler: transcriptionHandler,

		identity: identity,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Geocoding endpoints
	r.mux.HandleFunc("POST /api/geo", r.geoHandler.Handle)
	r.mux.HandleFunc("GET /api/distance", r.distanceHandler.Handle)

	// Profile endpoints
	r.mux.HandleFunc("GET /api/me", r.profileHandler.Get)
	r.mux.HandleFunc("POST /api/me", r.profileHandler.Update)

	// Transcription endpoints
	r.mux.HandleFunc("POST /api/analyze", r.transcriptionHandler.Analyze)
	r.mux.HandleFunc("GET /api/entries", r.transcriptionHandler.History)

	// Apply middleware in reverse order (last middleware wraps first).
	// Identity runs innermost so every handler sees an identity token;
	// CORS wraps everything so preflights and errors still get headers.
	var handler http.Handler = r.mux
	handler = middleware.IdentityMiddleware(r.identity)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
