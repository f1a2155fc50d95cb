package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studentregistry/internal/bootstrap"
	"github.com/yigit/studentregistry/internal/config"
	"github.com/yigit/studentregistry/internal/db"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.Database
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:   cfg,
		router:   bootstrap.SetupRouter(cfg, deps, lgr),
		database: database,
		logger:   lgr,
	}, nil
}

// Run serves until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// listener fails, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(fmt.Errorf("error starting server: %w", err), s.closeDatabase())
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests for up to 10 seconds, then closes the
// database.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if err := s.closeDatabase(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}

	s.logger.Info().Int("errors", len(errs)).Msg("Server stopped")
	return errors.Join(errs...)
}

func (s *Server) closeDatabase() error {
	if s.database == nil {
		return nil
	}
	err := s.database.Close()
	if err != nil {
		s.logger.Error().Err(err).Msg("Database close error")
	}
	s.database = nil
	return err
}
