package websocket

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server streams scrape-progress events to websocket subscribers.
type Server struct {
	server *http.Server
	hub    *Hub
	log    zerolog.Logger
}

// NewServer creates a progress-feed server.
func NewServer(log zerolog.Logger) *Server {
	return &Server{
		hub: NewHub(),
		log: log,
	}
}

// Hub exposes the broadcast hub so the pipeline reporter can publish to it.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start runs the hub and listens for subscribers.
func (s *Server) Start(port string) error {
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/progress", s.handleProgress)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	s.log.Info().Str("port", port).Msg("websocket server listening")
	return s.server.ListenAndServe()
}

// handleProgress upgrades a connection and subscribes it to the feed.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
