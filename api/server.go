package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/portfolio-resume-backend/config"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/rs/zerolog/log"
)

const defaultMaxUploadBytes = 20 << 20

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer wires the services over database and store. adminKey guards every
// mutating route and must not be empty.
func NewServer(database database.Database, store storage.MediaStore, c map[string]string, adminKey string) (Server, error) {
	if adminKey == "" {
		return Server{}, errs.NewConfigError("ADMIN_API_KEY", errors.New("admin key is required"))
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(
		services.New(database, store),
		store,
		withConfig(c),
		withStartupTime(startupTime),
		withAdminKey(adminKey),
		withHealthCheck(database.Ping),
	)

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	adminKey    string
	ping        func(context.Context) error
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withAdminKey(key string) func(*router) {
	return func(r *router) {
		r.adminKey = key
	}
}

func withHealthCheck(ping func(context.Context) error) func(*router) {
	return func(r *router) {
		r.ping = ping
	}
}

func newRouter(svcs *services.Services, store storage.MediaStore, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	m := newMetrics(config.GetString(router.config, "METRICS_NAMESPACE", "portfolio"))

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(m.instrument)
	chiRouter.Use(corsHandler(config.GetStrings(router.config, "ACCEPTED_ORIGINS", []string{"*"})))

	maxUploadBytes := config.GetInt64(router.config, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	handlers := initializeHandlers(svcs, store, maxUploadBytes, router.startupTime, router.ping)

	setupRoutes(chiRouter, handlers, newAdminGate(router.adminKey), m)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
