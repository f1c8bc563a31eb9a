package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/devconnect-be/internal/api/handlers"
	"github.com/isdelr/devconnect-be/internal/auth"
	"github.com/isdelr/devconnect-be/internal/services"
	"github.com/isdelr/devconnect-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// TokenCodec issues tokens at login and verifies them at the auth gate.
type TokenCodec interface {
	auth.Verifier
	handlers.TokenIssuer
}

// Dependencies are the collaborators the router serves.
type Dependencies struct {
	Users          services.UserServiceProvider
	Profiles       services.ProfileServiceProvider
	Posts          services.PostServiceProvider
	Tokens         TokenCodec
	Hub            *websocket.Hub
	Health         handlers.HealthChecker
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	metrics := NewMetrics()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.Users, deps.Tokens)
	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.Users)
	postHandler := handlers.NewPostHandler(deps.Posts, deps.Users, deps.Hub)
	feedHandler := handlers.NewFeedHandler(deps.Hub, deps.AllowedOrigins)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	gate := auth.Gate(deps.Tokens)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.Endpoint(healthHandler.Get))
		r.Method(http.MethodGet, "/metrics", metrics.Handler())

		r.Method(http.MethodPost, "/users", handlers.Endpoint(userHandler.Register))

		r.Route("/auth", func(r chi.Router) {
			r.Method(http.MethodPost, "/", handlers.Endpoint(userHandler.Login))
			r.With(gate).Method(http.MethodGet, "/", handlers.Endpoint(userHandler.Me))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Method(http.MethodGet, "/", handlers.Endpoint(profileHandler.GetAll))
			r.Method(http.MethodGet, "/user/{user_id}", handlers.Endpoint(profileHandler.GetByUser))

			r.Group(func(r chi.Router) {
				r.Use(gate)
				r.Method(http.MethodGet, "/me", handlers.Endpoint(profileHandler.Me))
				r.Method(http.MethodPost, "/", handlers.Endpoint(profileHandler.Upsert))
				r.Method(http.MethodDelete, "/", handlers.Endpoint(profileHandler.Delete))
				r.Method(http.MethodPut, "/experience", handlers.Endpoint(profileHandler.AddExperience))
				r.Method(http.MethodDelete, "/experience/{exp_id}", handlers.Endpoint(profileHandler.RemoveExperience))
				r.Method(http.MethodPut, "/education", handlers.Endpoint(profileHandler.AddEducation))
				r.Method(http.MethodDelete, "/education/{edu_id}", handlers.Endpoint(profileHandler.RemoveEducation))
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(gate)
			r.Get("/feed", feedHandler.Serve)
			r.Method(http.MethodPost, "/", handlers.Endpoint(postHandler.Create))
			r.Method(http.MethodGet, "/", handlers.Endpoint(postHandler.GetAll))
			r.Method(http.MethodGet, "/{id}", handlers.Endpoint(postHandler.Get))
			r.Method(http.MethodDelete, "/{id}", handlers.Endpoint(postHandler.Delete))
			r.Method(http.MethodPut, "/like/{id}", handlers.Endpoint(postHandler.Like))
			r.Method(http.MethodPut, "/unlike/{id}", handlers.Endpoint(postHandler.Unlike))
			r.Method(http.MethodPost, "/comment/{id}", handlers.Endpoint(postHandler.Comment))
			r.Method(http.MethodDelete, "/comment/{id}/{comment_id}", handlers.Endpoint(postHandler.Uncomment))
		})
	})

	return r
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
