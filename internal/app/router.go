package app

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	arcadeAPI "neuroflash/internal/api/arcade"
	"neuroflash/internal/api/health"
	"neuroflash/internal/api/middleware"
	"neuroflash/internal/api/stream"
)

type RouterDeps struct {
	Arcade      *arcadeAPI.Handler
	Stream      *stream.Handler
	Health      *health.Handler
	TokenSecret []byte
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimw.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	// Health endpoints
	r.Get("/healthz", deps.Health.Live)
	r.Get("/readyz", deps.Health.Ready)

	// Catalog endpoints
	r.Get("/games", deps.Arcade.Games)
	r.Get("/highscores", deps.Arcade.HighScores)

	// Session endpoints
	r.Post("/sessions", deps.Arcade.CreateSession)
	r.Route("/sessions/{id}", func(rr chi.Router) {
		rr.Use(middleware.Auth(deps.TokenSecret))

		rr.Get("/", deps.Arcade.State)
		rr.Delete("/", deps.Arcade.CloseSession)
		rr.Post("/start", deps.Arcade.Start)
		rr.Post("/restart", deps.Arcade.Restart)
		rr.Post("/input", deps.Arcade.Input)
		rr.Put("/assets", deps.Arcade.SetAssets)
		rr.Delete("/assets", deps.Arcade.ClearAssets)
		rr.Put("/language", deps.Arcade.SetLanguage)
		rr.Get("/stream", deps.Stream.Stream)
	})

	return r
}
