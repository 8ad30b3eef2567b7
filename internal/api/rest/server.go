package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fortuna/hardwood/internal/store"
)

// Server is the read-only REST API over the persisted schedule and boxscore
// data.
type Server struct {
	server  *http.Server
	handler *Handler
}

// NewServer creates the REST API server.
func NewServer(port string, db *store.Database, log zerolog.Logger) *Server {
	handler := NewHandler(db, log)

	router := mux.NewRouter()
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/games", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/boxscore", handler.GetGameBoxscore).Methods("GET")
	api.HandleFunc("/games/{gameID}/totals", handler.GetGameTotals).Methods("GET")
	api.HandleFunc("/games/{gameID}/summary", handler.GetGameSummary).Methods("GET")
	api.HandleFunc("/teams/{team}/averages", handler.GetTeamAverages).Methods("GET")

	return &Server{
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
