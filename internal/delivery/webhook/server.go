package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"wingsync/internal/application"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server receives ban notifications from the game-server side. A ban maps to
// the same removal path as an unlink, minus the permission check: revocation
// is an access-list concern first, link cleanup is best effort.
type Server struct {
	http    *http.Server
	service application.WhitelistService
	logger  application.Logger
	token   string
}

func NewServer(addr, token string, service application.WhitelistService, logger application.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		token:   token,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/hooks/ban", s.handleBan)

	s.http = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Start() error {
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type banNotification struct {
	PlayerName string `json:"player_name"`
}

func (s *Server) handleBan(w http.ResponseWriter, r *http.Request) {
	if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var n banNotification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&n); err != nil {
		http.Error(w, "invalid ban notification", http.StatusBadRequest)
		return
	}
	n.PlayerName = strings.TrimSpace(n.PlayerName)
	if n.PlayerName == "" {
		http.Error(w, "player_name is required", http.StatusBadRequest)
		return
	}

	s.logger.Info("received ban notification", "player", n.PlayerName)

	if err := s.service.Revoke(r.Context(), n.PlayerName); err != nil {
		s.logger.Error("failed to process ban", "player", n.PlayerName, "error", err.Error())
		http.Error(w, "failed to process ban", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("webhook request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
