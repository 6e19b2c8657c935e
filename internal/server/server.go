package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/timectl/internal/observability"
	"github.com/danmuck/timectl/internal/store"
)

// Server owns the HTTP surface over the two backing tables. It holds no
// mutable state of its own; every handler re-reads the tables on each call.
type Server struct {
	Name        string    `json:"name"`
	Addr        string    `json:"addr"`
	Appeared    time.Time `json:"appeared"`
	IndexFile   string    `json:"-"`
	RecentLimit int       `json:"-"`

	store  *store.Store
	router *gin.Engine
}

func New(cfg ServiceConfig) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Name:        cfg.Name,
		Addr:        cfg.Addr,
		Appeared:    time.Now(),
		IndexFile:   cfg.IndexFile,
		RecentLimit: cfg.RecentLimit,
		store:       store.New(cfg.ProjectsFile, cfg.TimesheetFile),
		router:      r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Store() *store.Store {
	return s.store
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
