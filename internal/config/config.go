package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DatasetConfig describes the backing tables and the seeded project rows
// used to initialize them.
type DatasetConfig struct {
	ProjectsFile  string        `toml:"projects_file"`
	TimesheetFile string        `toml:"timesheet_file"`
	Projects      []ProjectSeed `toml:"projects"`
}

// ProjectSeed is one row destined for the projects table. HoursProcured is
// an opaque passthrough column; the service never interprets it.
type ProjectSeed struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	HoursProcured string `toml:"hours_procured"`
}

func LoadDatasetConfig(path string) (DatasetConfig, error) {
	var cfg DatasetConfig
	if err := loadToml(path, &cfg); err != nil {
		return DatasetConfig{}, err
	}
	if cfg.ProjectsFile == "" {
		cfg.ProjectsFile = "projects.csv"
	}
	if cfg.TimesheetFile == "" {
		cfg.TimesheetFile = "timesheet.csv"
	}
	if err := ValidateDatasetConfig(cfg); err != nil {
		return DatasetConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDatasetConfig(cfg DatasetConfig) error {
	if strings.TrimSpace(cfg.ProjectsFile) == "" {
		return fmt.Errorf("dataset config missing projects_file")
	}
	if strings.TrimSpace(cfg.TimesheetFile) == "" {
		return fmt.Errorf("dataset config missing timesheet_file")
	}
	seen := make(map[string]struct{}, len(cfg.Projects))
	for i, project := range cfg.Projects {
		if err := ValidateProjectSeed(project); err != nil {
			return fmt.Errorf("project[%d] invalid: %w", i, err)
		}
		if _, dup := seen[project.ID]; dup {
			return fmt.Errorf("project[%d] invalid: duplicate id %q", i, project.ID)
		}
		seen[project.ID] = struct{}{}
	}
	return nil
}

func ValidateProjectSeed(p ProjectSeed) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Rows returns the seeded projects as CSV rows in table column order.
func (c DatasetConfig) Rows() [][]string {
	rows := make([][]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		rows = append(rows, []string{p.ID, p.Name, p.HoursProcured})
	}
	return rows
}
