package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/IgnacioJofreGrra/deceroacien-core/internal/config"
	"github.com/IgnacioJofreGrra/deceroacien-core/internal/logging"
)

type Server struct {
	cfg        *config.Config
	logger     logging.Logger
	httpServer *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

type publicConfigResponse struct {
	ProjectID string `json:"projectId"`
}

func New(cfg *config.Config, logger logging.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /public-config", s.publicConfig)

	// serve the frontend with SPA fallback
	if s.cfg.Static.Enabled {
		spa := NewSPAHandler(s.cfg.Static.Dir, s.cfg.Static.Index, s.logger)
		if !spa.IndexExists() {
			s.logger.Warn("Fallback document not found; unmatched paths will 404",
				"dir", s.cfg.Static.Dir, "index", s.cfg.Static.Index)
		}
		mux.Handle("GET /", spa)
	}

	return requestID(accessLog(s.logger, mux))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

func (s *Server) publicConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, publicConfigResponse{ProjectID: s.cfg.GCPProjectID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Starting HTTP server",
		"addr", ln.Addr().String(),
		"static", s.cfg.Static.Enabled,
		"static_dir", s.cfg.Static.Dir,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown failed", "error", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info("Server shutdown completed")
		return nil
	case err := <-errChan:
		return err
	}
}
