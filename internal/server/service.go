package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// ServiceConfig configures the timesheet service runtime defaults.
type ServiceConfig struct {
	Name          string
	Addr          string
	ProjectsFile  string
	TimesheetFile string
	IndexFile     string
	CorsOrigins   []string
	RecentLimit   int
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:          "timectl",
		Addr:          ":8080",
		ProjectsFile:  "projects.csv",
		TimesheetFile: "timesheet.csv",
		IndexFile:     "web/index.html",
		CorsOrigins:   nil,
		RecentLimit:   5,
	}
}

// Service runs the HTTP server lifecycle as a standalone process.
type Service struct {
	server *Server
	cfg    ServiceConfig
}

func NewService() *Service {
	return NewServiceWithConfig(DefaultServiceConfig())
}

func NewServiceWithConfig(cfg ServiceConfig) *Service {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultServiceConfig().RecentLimit
	}
	return &Service{
		server: New(cfg),
		cfg:    cfg,
	}
}

func (s *Service) Server() *Server {
	return s.server
}

// Run blocks until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.bootstrap()
	s.server.RegisterRoutes()

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.server.HTTPRouter(),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	log.Info().
		Str("addr", s.cfg.Addr).
		Str("projects_file", s.cfg.ProjectsFile).
		Str("timesheet_file", s.cfg.TimesheetFile).
		Msg("service_started")

	select {
	case <-ctx.Done():
		log.Info().Msg("service_shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// bootstrap sanity-checks the backing tables. Missing tables are not fatal;
// read paths report storage failures per request.
func (s *Service) bootstrap() {
	for _, path := range []string{s.cfg.ProjectsFile, s.cfg.TimesheetFile} {
		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("backing_table_unavailable")
		}
	}
}
