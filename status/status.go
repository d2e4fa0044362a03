// Package status exposes a small read-only HTTP surface for operators:
// liveness and an overview of what the running bot has loaded.
package status

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Overview describes the running bot.
type Overview struct {
	Name        string   `json:"name"`
	Middlewares []string `json:"middlewares"`
	Handlers    []string `json:"handlers"`
	UptimeSecs  int64    `json:"uptime_seconds"`
}

type Server struct {
	name        string
	middlewares []string
	handlers    []string
	startedAt   time.Time
}

func NewServer(name string, middlewares, handlers []string) *Server {
	return &Server{
		name:        name,
		middlewares: middlewares,
		handlers:    handlers,
		startedAt:   time.Now(),
	}
}

// ListenAndServe blocks serving the status endpoint on the given port.
func (s *Server) ListenAndServe(port string) error {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/overview", s.handleOverview).Methods(http.MethodGet)

	log.Printf("🩺 Status endpoint listening on :%s", port)
	return http.ListenAndServe(":"+port, cors.Default().Handler(router))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview := Overview{
		Name:        s.name,
		Middlewares: s.middlewares,
		Handlers:    s.handlers,
		UptimeSecs:  int64(time.Since(s.startedAt).Seconds()),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(overview); err != nil {
		log.Printf("❌ Failed to encode overview response: %v", err)
	}
}
