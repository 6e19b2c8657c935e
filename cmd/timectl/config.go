package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/timectl/internal/server"
)

type fileConfig struct {
	Name          string   `toml:"name"`
	Addr          string   `toml:"addr"`
	CorsOrigins   []string `toml:"cors_origins"`
	ProjectsFile  string   `toml:"projects_file"`
	TimesheetFile string   `toml:"timesheet_file"`
	IndexFile     string   `toml:"index_file"`
	RecentLimit   int      `toml:"recent_limit"`
}

func loadServiceConfig(path string) (server.ServiceConfig, error) {
	cfg := server.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return server.ServiceConfig{}, fmt.Errorf("load timectl config: %w", err)
	}

	if meta.IsDefined("name") {
		name := strings.TrimSpace(raw.Name)
		if name != "" {
			cfg.Name = name
		}
	}

	if meta.IsDefined("addr") {
		addr := strings.TrimSpace(raw.Addr)
		if addr != "" {
			cfg.Addr = addr
		}
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}

	if meta.IsDefined("projects_file") {
		cfg.ProjectsFile = strings.TrimSpace(raw.ProjectsFile)
	}

	if meta.IsDefined("timesheet_file") {
		cfg.TimesheetFile = strings.TrimSpace(raw.TimesheetFile)
	}

	if meta.IsDefined("index_file") {
		cfg.IndexFile = strings.TrimSpace(raw.IndexFile)
	}

	if meta.IsDefined("recent_limit") {
		if raw.RecentLimit <= 0 {
			return server.ServiceConfig{}, fmt.Errorf("load timectl config: recent_limit must be positive, got %d", raw.RecentLimit)
		}
		cfg.RecentLimit = raw.RecentLimit
	}

	if cfg.ProjectsFile == "" {
		return server.ServiceConfig{}, fmt.Errorf("load timectl config: projects_file is required")
	}
	if cfg.TimesheetFile == "" {
		return server.ServiceConfig{}, fmt.Errorf("load timectl config: timesheet_file is required")
	}

	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
