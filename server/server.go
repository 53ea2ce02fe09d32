package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectn/engine"

	"github.com/rs/zerolog/log"
)

type Server struct {
	http *http.Server
}

// New builds an HTTP server on addr serving games created with defaults.
func New(addr string, defaults engine.Settings) *Server {
	store := NewStore()
	hub := NewHub(store)
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(store, hub, defaults),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
